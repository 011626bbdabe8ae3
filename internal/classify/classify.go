// Package classify implements the ingredient classifier, partitioning
// an ingredient list into beneficial and concerning sets and
// producing a qualitative summary.
package classify

import (
	"fmt"

	"github.com/unbound-force/dermis/internal/taxonomy"
)

// Summary messages. These are part of the output contract.
const (
	SummaryClean         = "This product looks great for your skin! It contains beneficial ingredients without any common irritants."
	SummarySingleConcern = "This product is generally good but contains one potential concern."
	summaryManyFormat    = "This product contains %d ingredients that may cause issues for some skin types."
)

// Classify partitions ingredients into beneficial and concerning
// sets, preserving input order within each set.
//
// An ingredient is beneficial when its Beneficial flag is set. It is
// concerning when it carries a Concern and is not beneficial, so a
// beneficial ingredient with a caveat (retinol) is never concerning.
// Ingredients matching neither rule appear in neither set.
func Classify(ingredients []taxonomy.Ingredient) taxonomy.IngredientAnalysis {
	// Always return non-nil slices so JSON marshals as [] not null.
	beneficial := make([]taxonomy.Ingredient, 0, len(ingredients))
	concerning := make([]taxonomy.Ingredient, 0)

	for _, ing := range ingredients {
		if IsBeneficial(ing) {
			beneficial = append(beneficial, ing)
		}
		if IsConcerning(ing) {
			concerning = append(concerning, ing)
		}
	}

	return taxonomy.IngredientAnalysis{
		Beneficial: beneficial,
		Concerning: concerning,
		Summary:    Summarize(len(concerning)),
	}
}

// IsBeneficial reports whether ing counts as beneficial.
func IsBeneficial(ing taxonomy.Ingredient) bool {
	return ing.Beneficial
}

// IsConcerning reports whether ing counts as concerning.
func IsConcerning(ing taxonomy.Ingredient) bool {
	return ing.Concern != "" && !ing.Beneficial
}

// Summarize returns the summary message for a concerning count.
func Summarize(concerning int) string {
	switch {
	case concerning <= 0:
		return SummaryClean
	case concerning == 1:
		return SummarySingleConcern
	default:
		return fmt.Sprintf(summaryManyFormat, concerning)
	}
}
