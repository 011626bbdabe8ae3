package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unbound-force/dermis/internal/advisor"
	"github.com/unbound-force/dermis/internal/catalog"
	"github.com/unbound-force/dermis/internal/session"
	"github.com/unbound-force/dermis/internal/taxonomy"
)

const conflictFixture = "testdata/conflict.yaml"

// stubGenerator records prompts and returns a fixed reply.
type stubGenerator struct {
	reply   string
	prompts []advisor.Prompt
}

func (g *stubGenerator) Generate(_ context.Context, p advisor.Prompt) (string, error) {
	g.prompts = append(g.prompts, p)
	return g.reply, nil
}

// ---------------------------------------------------------------------------
// runAnalyze tests
// ---------------------------------------------------------------------------

func TestRunAnalyze_InvalidFormat(t *testing.T) {
	err := runAnalyze(context.Background(), analyzeParams{
		format: "yaml",
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	})
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
	if !strings.Contains(err.Error(), `invalid format "yaml"`) {
		t.Errorf("unexpected error message: %s", err)
	}
}

func TestRunAnalyze_MinScoreOutOfRange(t *testing.T) {
	err := runAnalyze(context.Background(), analyzeParams{
		format:   "text",
		minScore: 101,
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
	})
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("expected range error, got %v", err)
	}
}

func TestRunAnalyze_TextFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runAnalyze(context.Background(), analyzeParams{
		format: "text",
		stdout: &stdout,
		stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := stdout.String()
	for _, want := range []string{
		"CeraVe Hydrating Facial Cleanser",
		"--- Morning Routine ---",
		"--- Interactions ---",
		"5 product(s) analyzed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if stderr.Len() != 0 {
		t.Errorf("expected no CI summary without gates, got %q", stderr.String())
	}
}

func TestRunAnalyze_JSONFormat(t *testing.T) {
	var stdout bytes.Buffer
	err := runAnalyze(context.Background(), analyzeParams{
		format: "json",
		stdout: &stdout,
		stderr: &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed struct {
		Products []json.RawMessage `json:"products"`
		Metadata struct {
			Version  string   `json:"dermis_version"`
			Warnings []string `json:"warnings"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput:\n%s", err, stdout.String())
	}
	if len(parsed.Products) != 5 {
		t.Errorf("expected 5 products, got %d", len(parsed.Products))
	}
	if parsed.Metadata.Version != version {
		t.Errorf("dermis_version = %q, want %q", parsed.Metadata.Version, version)
	}
	if len(parsed.Metadata.Warnings) != 1 {
		t.Errorf("expected sample collection warning, got %v", parsed.Metadata.Warnings)
	}
}

func TestRunAnalyze_MinScoreGate(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runAnalyze(context.Background(), analyzeParams{
		format:   "text",
		minScore: 70,
		stdout:   &stdout,
		stderr:   &stderr,
	})
	if err == nil {
		t.Fatal("expected gate failure: the sample sunscreen scores 67")
	}
	if !strings.Contains(err.Error(), "1 product(s) score below 70") {
		t.Errorf("unexpected error: %s", err)
	}
	if !strings.Contains(stderr.String(), "Below 70: 1 (FAIL)") {
		t.Errorf("unexpected CI summary: %q", stderr.String())
	}
	if stdout.Len() == 0 {
		t.Error("report should be written before the gate fails")
	}
}

func TestRunAnalyze_FailOnConflict(t *testing.T) {
	tests := []struct {
		name     string
		products string
		wantErr  bool
		summary  string
	}{
		{"samples pass", "", false, "Conflicts: 0 (PASS)"},
		{"conflicting file fails", conflictFixture, true, "Conflicts: 1 (FAIL)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			err := runAnalyze(context.Background(), analyzeParams{
				products:       tt.products,
				format:         "json",
				failOnConflict: true,
				stdout:         &bytes.Buffer{},
				stderr:         &stderr,
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("runAnalyze() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(stderr.String(), tt.summary) {
				t.Errorf("CI summary = %q, want %q", stderr.String(), tt.summary)
			}
		})
	}
}

func TestRunAnalyze_MissingProducts(t *testing.T) {
	err := runAnalyze(context.Background(), analyzeParams{
		products: "testdata/does-not-exist.yaml",
		format:   "text",
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
	})
	if err == nil {
		t.Fatal("expected error for missing product file")
	}
}

func TestRunAnalyze_BadConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "dermis.yaml")
	if err := os.WriteFile(cfg, []byte("safety:\n  threshold: 150\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := runAnalyze(context.Background(), analyzeParams{
		config: cfg,
		format: "text",
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	})
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("expected config validation error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// routine / check / safety
// ---------------------------------------------------------------------------

// ---------------------------------------------------------------------------
// collection edit tests
// ---------------------------------------------------------------------------

// TestApplyEdits_RemoveActiveFallsBack verifies that removing the
// active product selects the first remaining one, and that removing
// the last product clears the selection.
func TestApplyEdits_RemoveActiveFallsBack(t *testing.T) {
	sess := session.New(catalog.SampleProducts())
	if p, ok := sess.Active(); !ok || p.ID != "1" {
		t.Fatalf("expected product 1 active, got %+v (ok=%v)", p.ID, ok)
	}

	if err := applyEdits(sess, collectionEdits{remove: []string{"1"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Len() != 4 {
		t.Errorf("Len() = %d, want 4", sess.Len())
	}
	p, ok := sess.Active()
	if !ok || p.ID != "2" {
		t.Errorf("expected product 2 active after removal, got %q (ok=%v)", p.ID, ok)
	}

	err := applyEdits(sess, collectionEdits{remove: []string{"2", "3", "Ultra Facial Sunscreen", "5"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sess.Active(); ok {
		t.Error("expected no active product in an empty session")
	}
}

func TestApplyEdits_AddCatalogSelectsNewProduct(t *testing.T) {
	sess := session.New(catalog.SampleProducts())
	if err := applyEdits(sess, collectionEdits{addCatalog: []string{"catalog-3"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Len() != 6 {
		t.Errorf("Len() = %d, want 6", sess.Len())
	}
	p, ok := sess.Active()
	if !ok || p.Name != "Retinol Revolution Set" {
		t.Fatalf("expected catalog product active, got %q (ok=%v)", p.Name, ok)
	}
	if p.ID == "catalog-3" {
		t.Error("added product should get a fresh ID")
	}
}

func TestApplyEdits_StarterScanAndSelect(t *testing.T) {
	sess := session.New(nil)
	starter := len(catalog.InitialSelection(catalog.Curated()))

	err := applyEdits(sess, collectionEdits{addStarter: true, addScan: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Len() != starter+1 {
		t.Errorf("Len() = %d, want %d", sess.Len(), starter+1)
	}
	p, ok := sess.Active()
	if !ok || p.DisplayName() != "CeraVe Hydrating Facial Cleanser" {
		t.Errorf("expected scanned product active, got %q (ok=%v)", p.DisplayName(), ok)
	}

	first := sess.Products()[0]
	if err := applyEdits(sess, collectionEdits{selectRef: first.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p, _ := sess.Active(); p.ID != first.ID {
		t.Errorf("active = %q, want %q", p.ID, first.ID)
	}
}

func TestApplyEdits_Unknown(t *testing.T) {
	sess := session.New(catalog.SampleProducts())

	err := applyEdits(sess, collectionEdits{remove: []string{"nope"}})
	if !errors.Is(err, session.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown removal, got %v", err)
	}
	err = applyEdits(sess, collectionEdits{selectRef: "nope"})
	if !errors.Is(err, session.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown selection, got %v", err)
	}
	err = applyEdits(sess, collectionEdits{addCatalog: []string{"catalog-99"}})
	if err == nil || !strings.Contains(err.Error(), "catalog-99") {
		t.Errorf("expected unknown catalog error, got %v", err)
	}
	if sess.Len() != 5 {
		t.Errorf("failed edits changed the session: Len() = %d", sess.Len())
	}
}

func TestRunAnalyze_RemoveProduct(t *testing.T) {
	var stdout bytes.Buffer
	err := runAnalyze(context.Background(), analyzeParams{
		format: "json",
		edits:  collectionEdits{remove: []string{"1"}},
		stdout: &stdout,
		stderr: &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed struct {
		Products []struct {
			Product struct {
				ID string `json:"id"`
			} `json:"product"`
		} `json:"products"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(parsed.Products) != 4 {
		t.Fatalf("expected 4 products, got %d", len(parsed.Products))
	}
	for _, p := range parsed.Products {
		if p.Product.ID == "1" {
			t.Error("removed product still reported")
		}
	}
}

// TestRunCheck_AddCatalogConflict verifies that an added glycolic
// treatment conflicts with the sample retinol serum, and that removing
// the serum clears it.
func TestRunCheck_AddCatalogConflict(t *testing.T) {
	var stdout bytes.Buffer
	err := runCheck(context.Background(), checkParams{
		format: "text",
		edits:  collectionEdits{addCatalog: []string{"catalog-6"}},
		stdout: &stdout,
	})
	if err == nil || !strings.Contains(err.Error(), "1 conflicting product pair(s)") {
		t.Fatalf("expected conflict error, got %v", err)
	}

	stdout.Reset()
	err = runCheck(context.Background(), checkParams{
		format: "text",
		edits:  collectionEdits{addCatalog: []string{"catalog-6"}, remove: []string{"Retinol Serum"}},
		stdout: &stdout,
	})
	if err != nil {
		t.Fatalf("expected no conflict after removal, got %v", err)
	}
}

func TestRunRoutine_AddScan(t *testing.T) {
	var stdout bytes.Buffer
	err := runRoutine(context.Background(), routineParams{
		times:  []taxonomy.TimeOfDay{taxonomy.Morning},
		format: "text",
		edits:  collectionEdits{addScan: true},
		stdout: &stdout,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Count(stdout.String(), "Hydrating Facial Cleanser"); got != 2 {
		t.Errorf("expected sample and scanned cleanser in morning routine, found %d:\n%s", got, stdout.String())
	}
}

func TestParseTimes(t *testing.T) {
	got, err := parseTimes(nil)
	if err != nil || len(got) != 2 {
		t.Errorf("parseTimes(nil) = %v, %v; want both routines", got, err)
	}
	got, err = parseTimes([]string{"Evening"})
	if err != nil || len(got) != 1 || got[0] != taxonomy.Evening {
		t.Errorf("parseTimes(Evening) = %v, %v", got, err)
	}
	if _, err := parseTimes([]string{"noon"}); err == nil {
		t.Error("expected error for unknown routine")
	}
}

func TestRunRoutine_Morning(t *testing.T) {
	var stdout bytes.Buffer
	err := runRoutine(context.Background(), routineParams{
		times:  []taxonomy.TimeOfDay{taxonomy.Morning},
		format: "text",
		stdout: &stdout,
	})
	if err != nil {
		t.Fatal(err)
	}
	out := stdout.String()
	if !strings.Contains(out, "--- Morning Routine ---") {
		t.Errorf("missing morning header:\n%s", out)
	}
	if strings.Contains(out, "Evening") {
		t.Errorf("evening routine should not be printed:\n%s", out)
	}
	cleanser := strings.Index(out, "Hydrating Facial Cleanser")
	sunscreen := strings.Index(out, "Sunscreen SPF 50")
	if cleanser < 0 || sunscreen < 0 || cleanser > sunscreen {
		t.Errorf("expected cleanser before sunscreen:\n%s", out)
	}
}

func TestRunRoutine_JSON(t *testing.T) {
	var stdout bytes.Buffer
	err := runRoutine(context.Background(), routineParams{
		times:  []taxonomy.TimeOfDay{taxonomy.Evening},
		format: "json",
		stdout: &stdout,
	})
	if err != nil {
		t.Fatal(err)
	}
	var parsed struct {
		Time  string            `json:"time"`
		Steps []json.RawMessage `json:"steps"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
	}
	if parsed.Time != "evening" || len(parsed.Steps) != 3 {
		t.Errorf("got time %q with %d steps, want evening with 3", parsed.Time, len(parsed.Steps))
	}
}

func TestRunCheck(t *testing.T) {
	var stdout bytes.Buffer
	if err := runCheck(context.Background(), checkParams{format: "text", stdout: &stdout}); err != nil {
		t.Fatalf("samples should not conflict: %v", err)
	}
	if !strings.Contains(stdout.String(), "No known ingredient conflicts") {
		t.Errorf("unexpected output:\n%s", stdout.String())
	}

	stdout.Reset()
	err := runCheck(context.Background(), checkParams{
		products: conflictFixture,
		format:   "json",
		stdout:   &stdout,
	})
	if err == nil || !strings.Contains(err.Error(), "1 conflicting product pair(s)") {
		t.Fatalf("expected conflict error, got %v", err)
	}
	var parsed struct {
		HasConflicts bool `json:"has_conflicts"`
		Pairs        []struct {
			Rule string `json:"rule"`
		} `json:"conflicting_pairs"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !parsed.HasConflicts || len(parsed.Pairs) != 1 || parsed.Pairs[0].Rule != "retinoid+aha" {
		t.Errorf("unexpected report: %+v", parsed)
	}
}

func TestRunSafety(t *testing.T) {
	var stdout bytes.Buffer
	err := runSafety(context.Background(), safetyParams{
		format:     "json",
		maxFlagged: -1,
		stdout:     &stdout,
	})
	if err != nil {
		t.Fatal(err)
	}
	var parsed struct {
		Scores  []json.RawMessage `json:"scores"`
		Summary struct {
			Flagged int `json:"flagged"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(parsed.Scores) != 5 || parsed.Summary.Flagged != 1 {
		t.Errorf("got %d scores, %d flagged; want 5, 1", len(parsed.Scores), parsed.Summary.Flagged)
	}

	err = runSafety(context.Background(), safetyParams{format: "text", maxFlagged: 0, stdout: &bytes.Buffer{}})
	if err == nil {
		t.Error("expected --max-flagged 0 to fail on the samples")
	}
}

// ---------------------------------------------------------------------------
// catalog / suggest
// ---------------------------------------------------------------------------

func TestRunCatalog(t *testing.T) {
	var stdout bytes.Buffer
	if err := runCatalog(catalogParams{category: "treatment", limit: 2, format: "json", stdout: &stdout}); err != nil {
		t.Fatal(err)
	}
	var products []taxonomy.Product
	if err := json.Unmarshal(stdout.Bytes(), &products); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	for _, p := range products {
		if p.Category != taxonomy.Treatment {
			t.Errorf("%s: category %s, want treatment", p.Name, p.Category)
		}
	}

	if err := runCatalog(catalogParams{category: "lipstick", format: "text", stdout: &bytes.Buffer{}}); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestRunCatalog_AllWithLimit(t *testing.T) {
	var stdout bytes.Buffer
	if err := runCatalog(catalogParams{category: "all", limit: 3, format: "json", stdout: &stdout}); err != nil {
		t.Fatal(err)
	}
	var products []taxonomy.Product
	if err := json.Unmarshal(stdout.Bytes(), &products); err != nil {
		t.Fatal(err)
	}
	if len(products) != 3 {
		t.Errorf("expected 3 products, got %d", len(products))
	}
}

func TestRunSuggest(t *testing.T) {
	var stdout bytes.Buffer
	if err := runSuggest(context.Background(), suggestParams{format: "json", stdout: &stdout}); err != nil {
		t.Fatal(err)
	}
	var products []taxonomy.Product
	if err := json.Unmarshal(stdout.Bytes(), &products); err != nil {
		t.Fatal(err)
	}
	got := make([]taxonomy.Category, len(products))
	for i, p := range products {
		got[i] = p.Category
	}
	want := []taxonomy.Category{taxonomy.Toner, taxonomy.Mask, taxonomy.Treatment}
	if len(got) != len(want) {
		t.Fatalf("suggested categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suggestion %d category = %s, want %s", i, got[i], want[i])
		}
	}
}

// ---------------------------------------------------------------------------
// advise / recommend
// ---------------------------------------------------------------------------

func TestRunAdvise_ByName(t *testing.T) {
	gen := &stubGenerator{reply: "Gentle and hydrating."}
	var stdout bytes.Buffer
	err := runAdvise(context.Background(), adviseParams{
		target:    "cerave",
		format:    "text",
		generator: gen,
		stdout:    &stdout,
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout.String()) != "Gentle and hydrating." {
		t.Errorf("output = %q", stdout.String())
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(gen.prompts))
	}
	if !strings.Contains(gen.prompts[0].User, `"CeraVe Hydrating Facial Cleanser"`) ||
		!strings.Contains(gen.prompts[0].User, "Ceramides") {
		t.Errorf("prompt missing product details: %s", gen.prompts[0].User)
	}
}

func TestRunAdvise_AdHocIngredients(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	var stdout bytes.Buffer
	err := runAdvise(context.Background(), adviseParams{
		target:      "Mystery Balm",
		ingredients: "Shea Butter, , Beeswax",
		format:      "json",
		generator:   gen,
		stdout:      &stdout,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(gen.prompts[0].User, "Shea Butter, Beeswax.") {
		t.Errorf("unexpected prompt: %s", gen.prompts[0].User)
	}
	var ans answerJSON
	if err := json.Unmarshal(stdout.Bytes(), &ans); err != nil {
		t.Fatal(err)
	}
	if ans.Text != "ok" || ans.Fallback {
		t.Errorf("answer = %+v", ans)
	}
}

func TestRunAdvise_NotFound(t *testing.T) {
	err := runAdvise(context.Background(), adviseParams{
		target:    "nonexistent",
		format:    "text",
		generator: &stubGenerator{},
		stdout:    &bytes.Buffer{},
	})
	if !errors.Is(err, session.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRunAdvise_NoAPIKeyFallsBack(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	var stdout bytes.Buffer
	err := runAdvise(context.Background(), adviseParams{
		target: "1",
		format: "text",
		stdout: &stdout,
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout.String()) != advisor.FallbackAnalysis {
		t.Errorf("output = %q, want fallback", stdout.String())
	}
}

func TestFindProduct_Ambiguous(t *testing.T) {
	c, err := loadCollection(context.Background(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := findProduct(c.sess, "serum"); err == nil ||
		!strings.Contains(err.Error(), "matches 2 products") {
		t.Errorf("expected ambiguity error, got %v", err)
	}
	p, err := findProduct(c.sess, "5")
	if err != nil || p.Name != "Retinol Serum" {
		t.Errorf("findProduct(5) = %v, %v", p.Name, err)
	}
}

func TestRunRecommend(t *testing.T) {
	gen := &stubGenerator{reply: "Use a gentle gel cleanser."}
	var stdout bytes.Buffer
	err := runRecommend(context.Background(), recommendParams{
		skinType:  "oily",
		concerns:  []string{"Acne", "Large pores"},
		format:    "text",
		generator: gen,
		stdout:    &stdout,
	})
	if err != nil {
		t.Fatal(err)
	}
	prompt := gen.prompts[0].User
	for _, want := range []string{"my oily skin", "Acne, Large pores", "budget is budget-friendly"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q: %s", want, prompt)
		}
	}
	if !strings.Contains(stdout.String(), "gentle gel cleanser") {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestRunRecommend_Invalid(t *testing.T) {
	tests := []struct {
		name string
		p    recommendParams
		want string
	}{
		{"skin type", recommendParams{skinType: "scaly", format: "text"}, "invalid skin type"},
		{"budget", recommendParams{skinType: "dry", budget: "free", format: "text"}, "invalid budget"},
		{"format", recommendParams{skinType: "dry", format: "xml"}, "invalid format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.p.stdout = &bytes.Buffer{}
			tt.p.generator = &stubGenerator{}
			err := runRecommend(context.Background(), tt.p)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}

	err := runRecommend(context.Background(), recommendParams{
		format: "text", generator: &stubGenerator{}, stdout: &bytes.Buffer{},
	})
	if !errors.Is(err, advisor.ErrSkinTypeRequired) {
		t.Errorf("expected ErrSkinTypeRequired, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// root command wiring
// ---------------------------------------------------------------------------

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCmd_Schema(t *testing.T) {
	out, err := executeRoot(t, "schema")
	if err != nil {
		t.Fatal(err)
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	if parsed["title"] != "Dermis Analyze Report" {
		t.Errorf("title = %v", parsed["title"])
	}
}

func TestRootCmd_InitThenAnalyze(t *testing.T) {
	dir := t.TempDir()
	out, err := executeRoot(t, "init", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "created: products.yaml") {
		t.Errorf("unexpected init output:\n%s", out)
	}

	out, err = executeRoot(t,
		"--products", filepath.Join(dir, "products.yaml"),
		"--config", filepath.Join(dir, ".dermis.yaml"),
		"routine", "evening", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"time": "evening"`) {
		t.Errorf("unexpected routine output:\n%s", out)
	}
}

func TestRootCmd_RecommendRequiresSkinType(t *testing.T) {
	if _, err := executeRoot(t, "recommend"); err == nil {
		t.Error("expected missing --skin-type error")
	}
}
