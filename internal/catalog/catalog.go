// Package catalog holds the built-in sample and curated products and
// the helpers for turning user input into product drafts.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/unbound-force/dermis/internal/taxonomy"
)

// ErrMissingFields is returned when a draft lacks a required field.
var ErrMissingFields = errors.New("missing information: name, brand, and category are required")

// CommonConcerns lists the skin concerns offered for recommendations.
var CommonConcerns = []string{
	"Acne",
	"Aging",
	"Dryness",
	"Hyperpigmentation",
	"Redness",
	"Sensitivity",
	"Texture",
	"Oiliness",
}

// SkinTypes lists the skin types offered for recommendations.
var SkinTypes = []string{"normal", "dry", "oily", "combination", "sensitive"}

// Budgets lists the budget tiers offered for recommendations.
var Budgets = []string{"budget-friendly", "mid-range", "luxury"}

// suggestionCategories are the categories a complete collection
// covers. "other" is never suggested.
var suggestionCategories = []taxonomy.Category{
	taxonomy.Cleanser, taxonomy.Toner, taxonomy.Serum,
	taxonomy.Moisturizer, taxonomy.Sunscreen, taxonomy.Mask,
	taxonomy.Treatment,
}

// Draft is user input for a new product, before it receives an ID.
type Draft struct {
	Name        string
	Brand       string
	Category    string
	Description string
	ImageURL    string
	Ingredients string
	Routines    []taxonomy.TimeOfDay
}

// DefaultImageURL is used when a draft has no image.
const DefaultImageURL = "https://images.unsplash.com/photo-1556229010-6c3f2c9ca5f8?w=500&auto=format&fit=crop"

// Product validates d and converts it to a product without an ID.
func (d Draft) Product() (taxonomy.Product, error) {
	if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Brand) == "" ||
		strings.TrimSpace(d.Category) == "" {
		return taxonomy.Product{}, ErrMissingFields
	}
	cat, err := taxonomy.ParseCategory(d.Category)
	if err != nil {
		return taxonomy.Product{}, err
	}

	img := d.ImageURL
	if img == "" {
		img = DefaultImageURL
	}

	return taxonomy.Product{
		Name:        strings.TrimSpace(d.Name),
		Brand:       strings.TrimSpace(d.Brand),
		Category:    cat,
		ImageURL:    img,
		Description: d.Description,
		Ingredients: ParseIngredientList(d.Ingredients),
		Routines:    dedupeRoutines(d.Routines),
	}, nil
}

// ParseIngredientList splits comma-separated manual entry into
// ingredients. Manually entered ingredients get the placeholder
// purpose and are marked beneficial. Blank items are dropped.
func ParseIngredientList(text string) []taxonomy.Ingredient {
	out := []taxonomy.Ingredient{}
	for _, item := range strings.Split(text, ",") {
		name := strings.TrimSpace(item)
		if name == "" {
			continue
		}
		out = append(out, taxonomy.Ingredient{
			Name:       name,
			Purpose:    taxonomy.UnknownPurpose,
			Beneficial: true,
		})
	}
	return out
}

// SimulatedScan returns the draft produced by the simulated camera
// capture.
func SimulatedScan() Draft {
	return Draft{
		Name:        "Hydrating Facial Cleanser",
		Brand:       "CeraVe",
		Category:    string(taxonomy.Cleanser),
		Description: "Gentle, hydrating cleanser for normal to dry skin",
		Ingredients: "Ceramides, Hyaluronic Acid, Glycerin",
		Routines:    []taxonomy.TimeOfDay{taxonomy.Morning, taxonomy.Evening},
	}
}

// InitialSelection returns the first catalog product of each
// category, in catalog order, each with a fresh ID.
func InitialSelection(catalog []taxonomy.Product) []taxonomy.Product {
	seen := make(map[taxonomy.Category]bool)
	var out []taxonomy.Product
	for _, p := range catalog {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		c := p.Clone()
		c.ID = taxonomy.GenerateID()
		out = append(out, c)
	}
	return out
}

// Suggestions returns, for every suggestable category missing from
// collection, the first catalog product of that category.
func Suggestions(collection, catalog []taxonomy.Product) []taxonomy.Product {
	have := make(map[taxonomy.Category]bool)
	for _, p := range collection {
		have[p.Category] = true
	}

	out := []taxonomy.Product{}
	for _, c := range suggestionCategories {
		if have[c] {
			continue
		}
		if matches := ByCategory(catalog, c, 1); len(matches) > 0 {
			out = append(out, matches[0])
		}
	}
	return out
}

// ByCategory returns up to limit catalog products of category c.
// limit <= 0 means no limit.
func ByCategory(catalog []taxonomy.Product, c taxonomy.Category, limit int) []taxonomy.Product {
	var out []taxonomy.Product
	for _, p := range catalog {
		if p.Category != c {
			continue
		}
		out = append(out, p.Clone())
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Find returns the catalog product with the given ID.
func Find(catalog []taxonomy.Product, id string) (taxonomy.Product, error) {
	for _, p := range catalog {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return taxonomy.Product{}, fmt.Errorf("catalog product %q not found", id)
}

func dedupeRoutines(in []taxonomy.TimeOfDay) []taxonomy.TimeOfDay {
	out := []taxonomy.TimeOfDay{}
	seen := make(map[taxonomy.TimeOfDay]bool)
	for _, r := range in {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
