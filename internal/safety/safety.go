// Package safety computes safety scores for skincare products from
// their ingredient classification.
//
// The score formula: Score(p) = round((total - concerning) / total * 100)
// where total is the ingredient count and concerning is the number of
// ingredients the classifier flags as concerning. A product with no
// ingredients scores 100.
//
// The flagged count of a collection is the number of products whose
// score is below a threshold (default 70).
package safety

import (
	"math"
)

// DefaultThreshold is the score below which a product is flagged.
const DefaultThreshold = 70

// worstCount is how many lowest-scoring products a summary lists.
const worstCount = 5

// Score holds the safety score for a single product.
type Score struct {
	// ProductID is the product's session ID.
	ProductID string `json:"product_id"`

	// Product is the display name ("Brand Name").
	Product string `json:"product"`

	// Category is the product category.
	Category string `json:"category"`

	// Ingredients is the total ingredient count.
	Ingredients int `json:"ingredients"`

	// Beneficial is the number of beneficial ingredients.
	Beneficial int `json:"beneficial"`

	// Concerning is the number of concerning ingredients.
	Concerning int `json:"concerning"`

	// Score is the safety score (0-100).
	Score int `json:"score"`

	// Summary is the classifier's summary message.
	Summary string `json:"summary"`
}

// Summary holds aggregate statistics for a safety report.
type Summary struct {
	TotalProducts   int     `json:"total_products"`
	AvgScore        float64 `json:"avg_score"`
	TotalConcerning int     `json:"total_concerning"`
	Flagged         int     `json:"flagged"`
	Threshold       int     `json:"threshold"`
	Worst           []Score `json:"worst"`
}

// Report is the complete safety analysis output.
type Report struct {
	Scores  []Score `json:"scores"`
	Summary Summary `json:"summary"`
}

// Formula computes round((total-concerning)/total*100), clamped to
// 0-100. total == 0 yields 100 rather than dividing by zero: a
// product without listed ingredients has nothing flagged.
func Formula(total, concerning int) int {
	if total <= 0 {
		return 100
	}
	if concerning < 0 {
		concerning = 0
	}
	if concerning > total {
		concerning = total
	}
	return int(math.Round(float64(total-concerning) / float64(total) * 100))
}
