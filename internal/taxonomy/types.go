// Package taxonomy defines the skincare type system, core data
// structures, and stable ID generation for dermis.
package taxonomy

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is the product category used for routine ordering.
type Category string

// Product categories. The set is closed; ParseCategory rejects
// anything else.
const (
	Cleanser    Category = "cleanser"
	Toner       Category = "toner"
	Serum       Category = "serum"
	Moisturizer Category = "moisturizer"
	Sunscreen   Category = "sunscreen"
	Mask        Category = "mask"
	Treatment   Category = "treatment"
	Other       Category = "other"
)

// TimeOfDay names a routine slot.
type TimeOfDay string

// Routine slots.
const (
	Morning TimeOfDay = "morning"
	Evening TimeOfDay = "evening"
)

// UnknownPurpose is the placeholder purpose for ingredients whose
// function has not been described.
const UnknownPurpose = "Unknown"

// Ingredient is a single named ingredient of a product.
type Ingredient struct {
	// Name is the free-form ingredient name (INCI or brand naming).
	Name string `json:"name" yaml:"name"`

	// Purpose describes what the ingredient does.
	Purpose string `json:"purpose" yaml:"purpose,omitempty"`

	// Concern is an optional caveat. Its presence does not by itself
	// make the ingredient non-beneficial.
	Concern string `json:"concern,omitempty" yaml:"concern,omitempty"`

	// Beneficial marks the ingredient as good for the skin. An
	// unset flag reads as false; there is no separate "unknown" state.
	Beneficial bool `json:"beneficial" yaml:"beneficial,omitempty"`
}

// Product is a skincare product in the working collection.
type Product struct {
	// ID is unique within a session and never reused.
	ID string `json:"id" yaml:"id,omitempty"`

	Name        string   `json:"name" yaml:"name"`
	Brand       string   `json:"brand" yaml:"brand"`
	Category    Category `json:"category" yaml:"category"`
	ImageURL    string   `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`

	// Ingredients keeps insertion order; order carries no meaning.
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`

	// Routines is the set of slots this product belongs to. It may be
	// empty for a product the user has not assigned yet.
	Routines []TimeOfDay `json:"routines" yaml:"routines"`

	// Rating is a display value only.
	Rating *float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
}

// InRoutine reports whether the product belongs to the given slot.
func (p Product) InRoutine(t TimeOfDay) bool {
	for _, r := range p.Routines {
		if r == t {
			return true
		}
	}
	return false
}

// SharesRoutine reports whether p and other have at least one
// routine slot in common.
func (p Product) SharesRoutine(other Product) bool {
	for _, r := range p.Routines {
		if other.InRoutine(r) {
			return true
		}
	}
	return false
}

// IngredientNames returns the ingredient names in order.
func (p Product) IngredientNames() []string {
	names := make([]string, 0, len(p.Ingredients))
	for _, ing := range p.Ingredients {
		names = append(names, ing.Name)
	}
	return names
}

// DisplayName returns "Brand Name", or just the name when the brand
// is empty.
func (p Product) DisplayName() string {
	if p.Brand == "" {
		return p.Name
	}
	return p.Brand + " " + p.Name
}

// Clone returns a deep copy of p so callers can hand out products
// without sharing the backing arrays.
func (p Product) Clone() Product {
	c := p
	if p.Ingredients != nil {
		c.Ingredients = append(make([]Ingredient, 0, len(p.Ingredients)), p.Ingredients...)
	}
	if p.Routines != nil {
		c.Routines = append(make([]TimeOfDay, 0, len(p.Routines)), p.Routines...)
	}
	if p.Rating != nil {
		r := *p.Rating
		c.Rating = &r
	}
	return c
}

// MarshalJSON encodes missing ingredient and routine lists as empty
// arrays.
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	a := Alias(p)
	if a.Ingredients == nil {
		a.Ingredients = []Ingredient{}
	}
	if a.Routines == nil {
		a.Routines = []TimeOfDay{}
	}
	return json.Marshal(a)
}

// IngredientAnalysis is the classifier output for one ingredient list.
type IngredientAnalysis struct {
	Beneficial []Ingredient `json:"beneficial"`
	Concerning []Ingredient `json:"concerning"`
	Summary    string       `json:"summary"`
}

// ProductAnalysis pairs a product with its ingredient analysis and
// derived safety score.
type ProductAnalysis struct {
	Product     Product            `json:"product"`
	Analysis    IngredientAnalysis `json:"analysis"`
	SafetyScore int                `json:"safety_score"`
}

// ConflictPair is one pair of products whose ingredient families
// conflict in a shared routine slot.
type ConflictPair struct {
	// Rule names the conflict rule that matched (e.g. "retinoid+aha").
	Rule string `json:"rule"`

	First  Product `json:"first"`
	Second Product `json:"second"`

	// SharedRoutines lists the slots both products belong to.
	SharedRoutines []TimeOfDay `json:"shared_routines"`
}

// ConflictReport is the contraindication scan result.
type ConflictReport struct {
	HasConflicts bool           `json:"has_conflicts"`
	Message      string         `json:"message"`
	Pairs        []ConflictPair `json:"conflicting_pairs,omitempty"`
}

// Metadata holds run metadata attached to JSON output.
type Metadata struct {
	Version   string        `json:"dermis_version"`
	Timestamp time.Time     `json:"-"`
	Duration  time.Duration `json:"-"`
	Warnings  []string      `json:"warnings"`
}

// MarshalJSON customizes JSON encoding to use duration_ms and
// ISO 8601 timestamp.
func (m Metadata) MarshalJSON() ([]byte, error) {
	type Alias Metadata
	ts := ""
	if !m.Timestamp.IsZero() {
		ts = m.Timestamp.UTC().Format(time.RFC3339)
	}
	return json.Marshal(&struct {
		Alias
		DurationMS int64  `json:"duration_ms"`
		Timestamp  string `json:"timestamp,omitempty"`
	}{
		Alias:      Alias(m),
		DurationMS: m.Duration.Milliseconds(),
		Timestamp:  ts,
	})
}

// GenerateID produces a fresh product ID. IDs are random (UUIDv4)
// so they are never reused within a session.
func GenerateID() string {
	return uuid.NewString()
}

// String implements fmt.Stringer.
func (c Category) String() string { return string(c) }

// String implements fmt.Stringer.
func (t TimeOfDay) String() string { return string(t) }

// Title returns the slot name capitalized for display ("Morning").
func (t TimeOfDay) Title() string {
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseTimeOfDay parses a routine slot name, case-insensitively.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	switch TimeOfDay(strings.ToLower(strings.TrimSpace(s))) {
	case Morning:
		return Morning, nil
	case Evening:
		return Evening, nil
	}
	return "", fmt.Errorf("invalid routine %q: must be 'morning' or 'evening'", s)
}
