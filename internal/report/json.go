// Package report provides output formatters for dermis results in
// JSON and human-readable text formats.
package report

import (
	"encoding/json"
	"io"

	"github.com/unbound-force/dermis/internal/classify"
	"github.com/unbound-force/dermis/internal/routine"
	"github.com/unbound-force/dermis/internal/safety"
	"github.com/unbound-force/dermis/internal/taxonomy"
)

// AnalyzeReport is the top-level JSON output of "dermis analyze".
type AnalyzeReport struct {
	Products  []taxonomy.ProductAnalysis `json:"products"`
	Routines  []routine.Routine          `json:"routines"`
	Conflicts taxonomy.ConflictReport    `json:"conflicts"`
	Metadata  taxonomy.Metadata          `json:"metadata"`
}

// Analyses classifies and scores every product, in input order.
func Analyses(products []taxonomy.Product) []taxonomy.ProductAnalysis {
	out := make([]taxonomy.ProductAnalysis, 0, len(products))
	for _, p := range products {
		a := classify.Classify(p.Ingredients)
		out = append(out, taxonomy.ProductAnalysis{
			Product:     p,
			Analysis:    a,
			SafetyScore: safety.Formula(len(p.Ingredients), len(a.Concerning)),
		})
	}
	return out
}

// NewAnalyzeReport assembles a report from a collection and its
// conflict scan. Both routines are always present.
func NewAnalyzeReport(products []taxonomy.Product, conflicts taxonomy.ConflictReport, meta taxonomy.Metadata) *AnalyzeReport {
	if meta.Warnings == nil {
		meta.Warnings = []string{}
	}
	routines := make([]routine.Routine, 0, len(taxonomy.TimesOfDay))
	for _, t := range taxonomy.TimesOfDay {
		routines = append(routines, routine.Build(products, t))
	}
	return &AnalyzeReport{
		Products:  Analyses(products),
		Routines:  routines,
		Conflicts: conflicts,
		Metadata:  meta,
	}
}

// WriteJSON writes an analyze report as formatted JSON.
func WriteJSON(w io.Writer, r *AnalyzeReport) error {
	return encode(w, r)
}

// WriteRoutineJSON writes a single routine as formatted JSON.
func WriteRoutineJSON(w io.Writer, r routine.Routine) error {
	return encode(w, r)
}

// WriteConflictsJSON writes a conflict report as formatted JSON.
func WriteConflictsJSON(w io.Writer, r taxonomy.ConflictReport) error {
	return encode(w, r)
}

// WriteProductsJSON writes a product list as formatted JSON.
func WriteProductsJSON(w io.Writer, products []taxonomy.Product) error {
	if products == nil {
		products = []taxonomy.Product{}
	}
	return encode(w, products)
}

func encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
