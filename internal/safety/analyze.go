package safety

import (
	"sort"

	"github.com/unbound-force/dermis/internal/classify"
	"github.com/unbound-force/dermis/internal/taxonomy"
)

// Options configures safety analysis.
type Options struct {
	// Threshold is the score below which a product is flagged.
	// Zero means DefaultThreshold.
	Threshold int
}

// ScoreProduct classifies p's ingredients and returns its Score.
func ScoreProduct(p taxonomy.Product) Score {
	a := classify.Classify(p.Ingredients)
	return Score{
		ProductID:   p.ID,
		Product:     p.DisplayName(),
		Category:    string(p.Category),
		Ingredients: len(p.Ingredients),
		Beneficial:  len(a.Beneficial),
		Concerning:  len(a.Concerning),
		Score:       Formula(len(p.Ingredients), len(a.Concerning)),
		Summary:     a.Summary,
	}
}

// Analyze scores every product and builds the summary. Scores keep
// the input order.
func Analyze(products []taxonomy.Product, opts Options) *Report {
	if opts.Threshold == 0 {
		opts.Threshold = DefaultThreshold
	}

	scores := make([]Score, 0, len(products))
	for _, p := range products {
		scores = append(scores, ScoreProduct(p))
	}

	return &Report{
		Scores:  scores,
		Summary: buildSummary(scores, opts.Threshold),
	}
}

func buildSummary(scores []Score, threshold int) Summary {
	s := Summary{
		TotalProducts: len(scores),
		Threshold:     threshold,
		Worst:         []Score{},
	}
	if len(scores) == 0 {
		return s
	}

	total := 0
	for _, sc := range scores {
		total += sc.Score
		s.TotalConcerning += sc.Concerning
		if sc.Score < threshold {
			s.Flagged++
		}
	}
	s.AvgScore = float64(total) / float64(len(scores))
	s.Worst = worst(scores, worstCount)
	return s
}

// worst returns up to n lowest-scoring products that have at least
// one concerning ingredient, lowest first. Ties keep input order.
func worst(scores []Score, n int) []Score {
	var candidates []Score
	for _, s := range scores {
		if s.Concerning > 0 {
			candidates = append(candidates, s)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score < candidates[j].Score
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	if candidates == nil {
		return []Score{}
	}
	return candidates
}
