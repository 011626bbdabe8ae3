package safety

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/unbound-force/dermis/internal/taxonomy"
)

func TestFormula(t *testing.T) {
	tests := []struct {
		name              string
		total, concerning int
		want              int
	}{
		{"five with one concerning", 5, 1, 80},
		{"clean", 3, 0, 100},
		{"all concerning", 4, 4, 0},
		{"rounds half up", 8, 1, 88}, // 87.5
		{"thirds", 3, 1, 67},         // 66.67
		{"zero ingredients", 0, 0, 100},
		{"concerning exceeds total clamps", 2, 5, 0},
		{"negative concerning clamps", 2, -1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Formula(tt.total, tt.concerning); got != tt.want {
				t.Errorf("Formula(%d, %d) = %d, want %d",
					tt.total, tt.concerning, got, tt.want)
			}
		})
	}
}

func product(id, name string, ings ...taxonomy.Ingredient) taxonomy.Product {
	return taxonomy.Product{
		ID:          id,
		Name:        name,
		Brand:       "Brand",
		Category:    taxonomy.Serum,
		Ingredients: ings,
		Routines:    []taxonomy.TimeOfDay{taxonomy.Morning},
	}
}

var (
	good     = taxonomy.Ingredient{Name: "Glycerin", Beneficial: true}
	irritant = taxonomy.Ingredient{Name: "Fragrance", Concern: "Potential irritant"}
)

func TestScoreProduct(t *testing.T) {
	p := product("1", "Sunscreen", good, good, good, good, irritant)
	got := ScoreProduct(p)

	if got.Score != 80 {
		t.Errorf("Score = %d, want 80", got.Score)
	}
	if got.Concerning != 1 || got.Beneficial != 4 || got.Ingredients != 5 {
		t.Errorf("counts = %d/%d/%d, want 1/4/5",
			got.Concerning, got.Beneficial, got.Ingredients)
	}
	if got.Product != "Brand Sunscreen" {
		t.Errorf("Product = %q", got.Product)
	}
	if !strings.Contains(got.Summary, "one potential concern") {
		t.Errorf("Summary = %q", got.Summary)
	}
}

func TestScoreProduct_NoIngredients(t *testing.T) {
	got := ScoreProduct(product("1", "Empty"))
	if got.Score != 100 {
		t.Errorf("Score = %d, want 100 for empty product", got.Score)
	}
}

func TestAnalyze_Summary(t *testing.T) {
	products := []taxonomy.Product{
		product("a", "Clean", good, good),
		product("b", "Half", good, irritant),
		product("c", "Bad", irritant, irritant, good),
	}
	rpt := Analyze(products, Options{})

	if len(rpt.Scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(rpt.Scores))
	}
	if rpt.Summary.Threshold != DefaultThreshold {
		t.Errorf("Threshold = %d, want default", rpt.Summary.Threshold)
	}
	// Scores: 100, 50, 33.
	if rpt.Summary.Flagged != 2 {
		t.Errorf("Flagged = %d, want 2", rpt.Summary.Flagged)
	}
	if rpt.Summary.TotalConcerning != 3 {
		t.Errorf("TotalConcerning = %d, want 3", rpt.Summary.TotalConcerning)
	}
	wantAvg := float64(100+50+33) / 3
	if rpt.Summary.AvgScore != wantAvg {
		t.Errorf("AvgScore = %f, want %f", rpt.Summary.AvgScore, wantAvg)
	}
	if len(rpt.Summary.Worst) != 2 || rpt.Summary.Worst[0].ProductID != "c" {
		t.Errorf("Worst = %+v, want c first", rpt.Summary.Worst)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	rpt := Analyze(nil, Options{Threshold: 90})
	if rpt.Summary.TotalProducts != 0 || rpt.Summary.Threshold != 90 {
		t.Errorf("unexpected summary: %+v", rpt.Summary)
	}
	if rpt.Summary.Worst == nil {
		t.Error("Worst should be non-nil for JSON")
	}
}

func TestWriteText(t *testing.T) {
	rpt := Analyze([]taxonomy.Product{
		product("a", "Clean Serum", good),
		product("b", "Risky Serum", irritant),
	}, Options{})

	var buf bytes.Buffer
	if err := WriteText(&buf, rpt); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"SCORE", "Brand Clean Serum", "Products scored:", "Flagged:", "Most Concerning"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteText_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, Analyze(nil, Options{})); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No products scored.") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	rpt := Analyze([]taxonomy.Product{product("a", "X", good, irritant)}, Options{})
	if err := WriteJSON(&buf, rpt); err != nil {
		t.Fatal(err)
	}
	var parsed Report
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Scores[0].Score != 50 {
		t.Errorf("Score = %d, want 50", parsed.Scores[0].Score)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("a very long product name", 10); got != "a very ..." {
		t.Errorf("truncate long = %q", got)
	}
}
