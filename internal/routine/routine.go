// Package routine orders a product collection into the application
// sequence for one time of day.
//
// Layering follows a fixed category precedence table per slot:
// thin, water-based products first, occlusive products last, with
// sunscreen closing the morning routine.
package routine

import (
	"fmt"
	"sort"

	"github.com/unbound-force/dermis/internal/taxonomy"
)

// Precedence maps each slot to its ordered category table.
var Precedence = map[taxonomy.TimeOfDay][]taxonomy.Category{
	taxonomy.Morning: {
		taxonomy.Cleanser,
		taxonomy.Toner,
		taxonomy.Serum,
		taxonomy.Moisturizer,
		taxonomy.Sunscreen,
	},
	taxonomy.Evening: {
		taxonomy.Cleanser,
		taxonomy.Toner,
		taxonomy.Serum,
		taxonomy.Treatment,
		taxonomy.Moisturizer,
		taxonomy.Mask,
	},
}

// Rank returns the position of category c in the precedence table
// for t. Categories missing from the table rank after every listed
// category.
func Rank(t taxonomy.TimeOfDay, c taxonomy.Category) int {
	table := Precedence[t]
	for i, tc := range table {
		if tc == c {
			return i
		}
	}
	return len(table)
}

// Order returns the products that belong to routine t, sorted by the
// precedence table for t. The sort is stable: products sharing a
// category, and products whose category is not in the table, keep
// their relative input order. The input slice is not modified.
func Order(products []taxonomy.Product, t taxonomy.TimeOfDay) []taxonomy.Product {
	out := make([]taxonomy.Product, 0, len(products))
	for _, p := range products {
		if p.InRoutine(t) {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return Rank(t, out[i].Category) < Rank(t, out[j].Category)
	})
	return out
}

// Step is one numbered entry of an ordered routine.
type Step struct {
	Number  int              `json:"step"`
	Product taxonomy.Product `json:"product"`
}

// Routine is the ordered routine for one slot.
type Routine struct {
	Time  taxonomy.TimeOfDay `json:"time"`
	Steps []Step             `json:"steps"`
}

// Build orders products for t and numbers the steps from 1.
func Build(products []taxonomy.Product, t taxonomy.TimeOfDay) Routine {
	ordered := Order(products, t)
	steps := make([]Step, 0, len(ordered))
	for i, p := range ordered {
		steps = append(steps, Step{Number: i + 1, Product: p})
	}
	return Routine{Time: t, Steps: steps}
}

// Headline returns the display line for a routine: a count of
// products in order, or the empty-routine prompt.
func (r Routine) Headline() string {
	if len(r.Steps) == 0 {
		return fmt.Sprintf("No products added to your %s routine yet.", r.Time)
	}
	return fmt.Sprintf("%d products in optimal order", len(r.Steps))
}
