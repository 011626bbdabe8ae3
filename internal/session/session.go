// Package session holds the working product collection and the
// currently selected product. Derived views (routines, conflict
// reports) are recomputed from the collection on demand.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/unbound-force/dermis/internal/catalog"
	"github.com/unbound-force/dermis/internal/interaction"
	"github.com/unbound-force/dermis/internal/routine"
	"github.com/unbound-force/dermis/internal/taxonomy"
)

// ErrNotFound is returned when a product ID is not in the session.
var ErrNotFound = errors.New("product not found")

// AllCategories is the Filter category value that matches every
// product.
const AllCategories = "all"

// EventKind identifies a session mutation.
type EventKind string

// Event kinds.
const (
	EventAdded    EventKind = "added"
	EventRemoved  EventKind = "removed"
	EventSelected EventKind = "selected"
)

// Event describes one mutation. ProductID is empty when the selection
// is cleared.
type Event struct {
	Kind      EventKind
	ProductID string
}

// Session is safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	products []taxonomy.Product
	active   string
	scanner  *interaction.Scanner
	onChange []func(Event)
}

// Option configures a Session.
type Option func(*Session)

// WithScanner sets the scanner used by Contraindications.
func WithScanner(s *interaction.Scanner) Option {
	return func(sess *Session) { sess.scanner = s }
}

// New returns a session seeded with products. Seeds without an ID get
// a fresh one; seeds with duplicate IDs are re-keyed. The first seed
// becomes active.
func New(seed []taxonomy.Product, opts ...Option) *Session {
	s := &Session{scanner: interaction.DefaultScanner()}
	for _, o := range opts {
		o(s)
	}

	seen := make(map[string]bool, len(seed))
	for _, p := range seed {
		c := p.Clone()
		if c.ID == "" || seen[c.ID] {
			c.ID = taxonomy.GenerateID()
		}
		seen[c.ID] = true
		s.products = append(s.products, c)
	}
	if len(s.products) > 0 {
		s.active = s.products[0].ID
	}
	return s
}

// OnChange registers fn to be called after every mutation. Callbacks
// run without the session lock held.
func (s *Session) OnChange(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

func (s *Session) emit(events ...Event) {
	s.mu.RLock()
	fns := append(([]func(Event))(nil), s.onChange...)
	s.mu.RUnlock()
	for _, e := range events {
		for _, fn := range fns {
			fn(e)
		}
	}
}

// Add validates d, stores it under a fresh ID, and makes it active.
func (s *Session) Add(d catalog.Draft) (taxonomy.Product, error) {
	p, err := d.Product()
	if err != nil {
		return taxonomy.Product{}, fmt.Errorf("adding product: %w", err)
	}
	p.ID = taxonomy.GenerateID()

	s.mu.Lock()
	s.products = append(s.products, p)
	s.active = p.ID
	s.mu.Unlock()

	s.emit(Event{EventAdded, p.ID}, Event{EventSelected, p.ID})
	return p.Clone(), nil
}

// AddMany stores copies of products, each under a fresh ID. The
// selection is unchanged unless the session was empty.
func (s *Session) AddMany(products []taxonomy.Product) []taxonomy.Product {
	added := make([]taxonomy.Product, 0, len(products))
	for _, p := range products {
		c := p.Clone()
		c.ID = taxonomy.GenerateID()
		added = append(added, c)
	}

	s.mu.Lock()
	s.products = append(s.products, added...)
	var selected string
	if s.active == "" && len(s.products) > 0 {
		s.active = s.products[0].ID
		selected = s.active
	}
	s.mu.Unlock()

	events := make([]Event, 0, len(added)+1)
	for _, p := range added {
		events = append(events, Event{EventAdded, p.ID})
	}
	if selected != "" {
		events = append(events, Event{EventSelected, selected})
	}
	s.emit(events...)

	out := make([]taxonomy.Product, len(added))
	for i, p := range added {
		out[i] = p.Clone()
	}
	return out
}

// Remove deletes the product with the given ID. If it was active, the
// first remaining product becomes active, or none if the session is
// now empty.
func (s *Session) Remove(id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("removing %q: %w", id, ErrNotFound)
	}
	s.products = append(s.products[:idx], s.products[idx+1:]...)

	events := []Event{{EventRemoved, id}}
	if s.active == id {
		s.active = ""
		if len(s.products) > 0 {
			s.active = s.products[0].ID
		}
		events = append(events, Event{EventSelected, s.active})
	}
	s.mu.Unlock()

	s.emit(events...)
	return nil
}

// Select makes the product with the given ID active.
func (s *Session) Select(id string) error {
	s.mu.Lock()
	if s.indexLocked(id) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("selecting %q: %w", id, ErrNotFound)
	}
	s.active = id
	s.mu.Unlock()

	s.emit(Event{EventSelected, id})
	return nil
}

// Active returns the active product, if any.
func (s *Session) Active() (taxonomy.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexLocked(s.active)
	if idx < 0 {
		return taxonomy.Product{}, false
	}
	return s.products[idx].Clone(), true
}

// Get returns the product with the given ID.
func (s *Session) Get(id string) (taxonomy.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return taxonomy.Product{}, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	return s.products[idx].Clone(), nil
}

// Products returns a copy of the collection in insertion order.
func (s *Session) Products() []taxonomy.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]taxonomy.Product, len(s.products))
	for i, p := range s.products {
		out[i] = p.Clone()
	}
	return out
}

// Len returns the number of products.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Filter returns products whose name or brand contains search
// (case-insensitive) and whose category matches. An empty category or
// AllCategories matches every product.
func (s *Session) Filter(search, category string) []taxonomy.Product {
	q := strings.ToLower(strings.TrimSpace(search))
	cat := strings.ToLower(strings.TrimSpace(category))

	var out []taxonomy.Product
	for _, p := range s.Products() {
		if cat != "" && cat != AllCategories && string(p.Category) != cat {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Brand), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Contraindications scans the collection for conflicting pairs. It
// returns nil when there are fewer than two products.
func (s *Session) Contraindications() *taxonomy.ConflictReport {
	products := s.Products()
	if len(products) < 2 {
		return nil
	}
	r := s.scanner.Scan(products)
	return &r
}

// Routine returns the ordered routine for t.
func (s *Session) Routine(t taxonomy.TimeOfDay) routine.Routine {
	return routine.Build(s.Products(), t)
}

func (s *Session) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
