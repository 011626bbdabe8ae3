package interaction

import (
	"fmt"
	"strings"

	"github.com/unbound-force/dermis/internal/config"
	"github.com/unbound-force/dermis/internal/taxonomy"
)

// Report messages. These are part of the output contract.
const (
	MessageConflict = "Some products in your collection contain ingredients that may interact poorly when used in the same routine. Consider using them at different times of day or on alternate days."
	MessageClear    = "No known ingredient conflicts were found among your products."
)

// Rule declares that products from two families conflict when used
// in the same routine slot. Rules are symmetric.
type Rule struct {
	Name   string
	First  string
	Second string
}

// DefaultRules are the built-in conflict rules.
var DefaultRules = []Rule{
	{Name: "retinoid+aha", First: Retinoid, Second: AHA},
	{Name: "retinoid+vitamin-c", First: Retinoid, Second: VitaminC},
}

// Scanner checks a collection against a set of rules.
type Scanner struct {
	Matcher Matcher
	Rules   []Rule
}

// DefaultScanner returns a scanner with the built-in families and
// rules.
func DefaultScanner() *Scanner {
	return &Scanner{
		Matcher: DefaultMatcher(),
		Rules:   append([]Rule(nil), DefaultRules...),
	}
}

// NewScanner returns a scanner with the built-in families and rules
// extended by cfg. A nil cfg yields DefaultScanner.
func NewScanner(cfg *config.InteractionConfig) (*Scanner, error) {
	s := DefaultScanner()
	if cfg == nil {
		return s, nil
	}

	m := DefaultMatcher()
	for family, kws := range cfg.Families {
		m.Add(family, kws...)
	}
	s.Matcher = m

	known := make(map[string]bool)
	for _, f := range m.Families() {
		known[f] = true
	}
	for _, rc := range cfg.Rules {
		rc.First = strings.ToLower(strings.TrimSpace(rc.First))
		rc.Second = strings.ToLower(strings.TrimSpace(rc.Second))
		if !known[rc.First] || !known[rc.Second] {
			return nil, fmt.Errorf("rule %q references unknown family (%s, %s)",
				rc.Name, rc.First, rc.Second)
		}
		name := rc.Name
		if name == "" {
			name = rc.First + "+" + rc.Second
		}
		s.Rules = append(s.Rules, Rule{Name: name, First: rc.First, Second: rc.Second})
	}
	return s, nil
}

// Scan runs the default scanner over products.
func Scan(products []taxonomy.Product) taxonomy.ConflictReport {
	return DefaultScanner().Scan(products)
}

// Scan reports every conflicting pair in products.
//
// For each rule, products holding the first family are paired with
// products holding the second, first-major. A pair is kept when the
// two products have different IDs and share a routine slot. Pairs are
// not de-duplicated across rules; each pair records its rule.
//
// Collections with fewer than two products are never scanned. IDs
// must be unique within products.
func (s *Scanner) Scan(products []taxonomy.Product) taxonomy.ConflictReport {
	if len(products) < 2 {
		return noConflicts()
	}

	var pairs []taxonomy.ConflictPair
	for _, rule := range s.Rules {
		firsts := s.withFamily(products, rule.First)
		if len(firsts) == 0 {
			continue
		}
		seconds := s.withFamily(products, rule.Second)

		for _, a := range firsts {
			for _, b := range seconds {
				if a.ID == b.ID {
					continue
				}
				shared := sharedRoutines(a, b)
				if len(shared) == 0 {
					continue
				}
				pairs = append(pairs, taxonomy.ConflictPair{
					Rule:           rule.Name,
					First:          a,
					Second:         b,
					SharedRoutines: shared,
				})
			}
		}
	}

	if len(pairs) == 0 {
		return noConflicts()
	}
	return taxonomy.ConflictReport{
		HasConflicts: true,
		Message:      MessageConflict,
		Pairs:        pairs,
	}
}

func (s *Scanner) withFamily(products []taxonomy.Product, family string) []taxonomy.Product {
	var out []taxonomy.Product
	for _, p := range products {
		if HasFamily(s.Matcher, p, family) {
			out = append(out, p)
		}
	}
	return out
}

func sharedRoutines(a, b taxonomy.Product) []taxonomy.TimeOfDay {
	var out []taxonomy.TimeOfDay
	for _, t := range taxonomy.TimesOfDay {
		if a.InRoutine(t) && b.InRoutine(t) {
			out = append(out, t)
		}
	}
	return out
}

func noConflicts() taxonomy.ConflictReport {
	return taxonomy.ConflictReport{HasConflicts: false, Message: MessageClear}
}
