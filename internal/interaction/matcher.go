// Package interaction detects ingredient contraindications across a
// product collection.
package interaction

import (
	"sort"
	"strings"

	"github.com/unbound-force/dermis/internal/taxonomy"
)

// Family names.
const (
	Retinoid = "retinoid"
	AHA      = "aha"
	BHA      = "bha"
	VitaminC = "vitamin-c"
)

// DefaultFamilies is the built-in keyword table. BHA has no rule yet;
// its detector is kept so rules can be added by configuration.
var DefaultFamilies = map[string][]string{
	Retinoid: {"retinol", "retin-a", "tretinoin"},
	AHA:      {"glycolic", "lactic", "aha"},
	BHA:      {"salicylic", "bha"},
	VitaminC: {"vitamin c", "ascorbic", "l-ascorbic"},
}

// Matcher decides ingredient-family membership.
type Matcher interface {
	// Matches reports whether an ingredient name belongs to family.
	Matches(family, ingredient string) bool

	// Families lists the known family names.
	Families() []string
}

// KeywordMatcher matches by case-insensitive substring against a
// keyword list per family.
type KeywordMatcher struct {
	patterns map[string][]string
}

// NewKeywordMatcher builds a matcher from a family → keywords table.
// Keywords are lowercased; the table is copied.
func NewKeywordMatcher(families map[string][]string) *KeywordMatcher {
	m := &KeywordMatcher{patterns: make(map[string][]string, len(families))}
	for name, kws := range families {
		m.Add(name, kws...)
	}
	return m
}

// DefaultMatcher returns a matcher over DefaultFamilies.
func DefaultMatcher() *KeywordMatcher {
	return NewKeywordMatcher(DefaultFamilies)
}

// Add appends keywords to family, creating it if needed.
func (m *KeywordMatcher) Add(family string, keywords ...string) {
	family = strings.ToLower(strings.TrimSpace(family))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		m.patterns[family] = append(m.patterns[family], kw)
	}
}

// Matches implements Matcher.
func (m *KeywordMatcher) Matches(family, ingredient string) bool {
	name := strings.ToLower(ingredient)
	for _, kw := range m.patterns[strings.ToLower(family)] {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// Families implements Matcher. Names are sorted.
func (m *KeywordMatcher) Families() []string {
	names := make([]string, 0, len(m.patterns))
	for name := range m.patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Keywords returns a copy of the keywords for family.
func (m *KeywordMatcher) Keywords(family string) []string {
	return append([]string(nil), m.patterns[strings.ToLower(family)]...)
}

// HasFamily reports whether any ingredient of p belongs to family.
func HasFamily(m Matcher, p taxonomy.Product, family string) bool {
	for _, ing := range p.Ingredients {
		if m.Matches(family, ing.Name) {
			return true
		}
	}
	return false
}

// FamiliesOf lists the families present in p, in m.Families() order.
func FamiliesOf(m Matcher, p taxonomy.Product) []string {
	var out []string
	for _, f := range m.Families() {
		if HasFamily(m, p, f) {
			out = append(out, f)
		}
	}
	return out
}
