package taxonomy

import (
	"fmt"
	"strings"
)

// Categories lists every category in declaration order.
var Categories = []Category{
	Cleanser, Toner, Serum, Moisturizer,
	Sunscreen, Mask, Treatment, Other,
}

// TimesOfDay lists every routine slot.
var TimesOfDay = []TimeOfDay{Morning, Evening}

var categorySet = func() map[Category]bool {
	m := make(map[Category]bool, len(Categories))
	for _, c := range Categories {
		m[c] = true
	}
	return m
}()

// Valid reports whether c is one of the closed set of categories.
func (c Category) Valid() bool {
	return categorySet[c]
}

// ParseCategory parses a category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q", s)
	}
	return c, nil
}
