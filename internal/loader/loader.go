// Package loader reads product collections from YAML or JSON files.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unbound-force/dermis/internal/taxonomy"
)

// ErrInvalidProduct is returned when a collection file contains a
// product that fails validation.
var ErrInvalidProduct = errors.New("invalid product")

// Extensions lists the file extensions LoadFile accepts.
var Extensions = []string{".yaml", ".yml", ".json"}

// collectionFile is the on-disk layout. JSON files use the same shape
// and are decoded by the YAML parser.
type collectionFile struct {
	Products []rawProduct `yaml:"products"`
}

type rawProduct struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Brand       string          `yaml:"brand"`
	Category    string          `yaml:"category"`
	ImageURL    string          `yaml:"image_url"`
	Description string          `yaml:"description"`
	Ingredients []rawIngredient `yaml:"ingredients"`
	Routines    []string        `yaml:"routines"`
	Rating      *float64        `yaml:"rating"`
}

type rawIngredient struct {
	Name       string `yaml:"name"`
	Purpose    string `yaml:"purpose"`
	Concern    string `yaml:"concern"`
	Beneficial bool   `yaml:"beneficial"`
}

// UnmarshalYAML accepts either a mapping or a bare ingredient name.
// A bare name is treated like manual entry: unknown purpose,
// beneficial.
func (r *rawIngredient) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		r.Name = node.Value
		r.Beneficial = true
		return nil
	}
	type plain rawIngredient
	return node.Decode((*plain)(r))
}

// LoadFile reads the collection at path. Products without an ID get a
// fresh one, and ingredients without a purpose get the placeholder.
// Any invalid product fails the whole file.
func LoadFile(path string) ([]taxonomy.Product, error) {
	if !supported(path) {
		return nil, fmt.Errorf("%s: unsupported file type (want %s)",
			path, strings.Join(Extensions, ", "))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading products: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes a collection. name is used in error messages only.
func Parse(name string, data []byte) ([]taxonomy.Product, error) {
	var f collectionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	out := make([]taxonomy.Product, 0, len(f.Products))
	ids := make(map[string]int, len(f.Products))
	for i, raw := range f.Products {
		p, err := convert(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: products[%d]: %w", name, i, err)
		}
		if prev, dup := ids[p.ID]; dup {
			return nil, fmt.Errorf("%s: products[%d]: %w: duplicate id %q (first at products[%d])",
				name, i, ErrInvalidProduct, p.ID, prev)
		}
		ids[p.ID] = i
		out = append(out, p)
	}
	return out, nil
}

func convert(raw rawProduct) (taxonomy.Product, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return taxonomy.Product{}, fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	cat, err := taxonomy.ParseCategory(raw.Category)
	if err != nil {
		return taxonomy.Product{}, fmt.Errorf("%w: %s: %v", ErrInvalidProduct, name, err)
	}

	routines := []taxonomy.TimeOfDay{}
	seen := make(map[taxonomy.TimeOfDay]bool)
	for _, r := range raw.Routines {
		t, err := taxonomy.ParseTimeOfDay(r)
		if err != nil {
			return taxonomy.Product{}, fmt.Errorf("%w: %s: %v", ErrInvalidProduct, name, err)
		}
		if !seen[t] {
			seen[t] = true
			routines = append(routines, t)
		}
	}

	ingredients := make([]taxonomy.Ingredient, 0, len(raw.Ingredients))
	for j, ri := range raw.Ingredients {
		iname := strings.TrimSpace(ri.Name)
		if iname == "" {
			return taxonomy.Product{}, fmt.Errorf("%w: %s: ingredients[%d]: name is required",
				ErrInvalidProduct, name, j)
		}
		purpose := strings.TrimSpace(ri.Purpose)
		if purpose == "" {
			purpose = taxonomy.UnknownPurpose
		}
		ingredients = append(ingredients, taxonomy.Ingredient{
			Name:       iname,
			Purpose:    purpose,
			Concern:    strings.TrimSpace(ri.Concern),
			Beneficial: ri.Beneficial,
		})
	}

	id := strings.TrimSpace(raw.ID)
	if id == "" {
		id = taxonomy.GenerateID()
	}

	return taxonomy.Product{
		ID:          id,
		Name:        name,
		Brand:       strings.TrimSpace(raw.Brand),
		Category:    cat,
		ImageURL:    raw.ImageURL,
		Description: raw.Description,
		Ingredients: ingredients,
		Routines:    routines,
		Rating:      raw.Rating,
	}, nil
}

func supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
