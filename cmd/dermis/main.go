package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/unbound-force/dermis/internal/advisor"
	"github.com/unbound-force/dermis/internal/catalog"
	"github.com/unbound-force/dermis/internal/config"
	"github.com/unbound-force/dermis/internal/interaction"
	"github.com/unbound-force/dermis/internal/loader"
	"github.com/unbound-force/dermis/internal/report"
	"github.com/unbound-force/dermis/internal/routine"
	"github.com/unbound-force/dermis/internal/safety"
	"github.com/unbound-force/dermis/internal/scaffold"
	"github.com/unbound-force/dermis/internal/session"
	"github.com/unbound-force/dermis/internal/taxonomy"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	products string
	config   string
	verbose  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "dermis",
		Short: "Dermis - skincare routine ordering and ingredient interaction checks",
		Long: `Dermis classifies product ingredients, scores product safety,
orders morning and evening routines, and flags products whose
active ingredients should not share a routine.

Without --products, the built-in sample collection is used.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.verbose {
				logger.SetLevel(charmlog.DebugLevel)
			}
		},
	}

	root.PersistentFlags().StringVarP(&g.products, "products", "p", "",
		"product collection file or directory (default: sample products)")
	root.PersistentFlags().StringVar(&g.config, "config", "",
		"config file (default: "+config.DefaultFileName+")")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false,
		"enable debug logging")

	root.AddCommand(newAnalyzeCmd(g))
	root.AddCommand(newRoutineCmd(g))
	root.AddCommand(newCheckCmd(g))
	root.AddCommand(newSafetyCmd(g))
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newSuggestCmd(g))
	root.AddCommand(newAdviseCmd(g))
	root.AddCommand(newRecommendCmd(g))
	root.AddCommand(newInitCmd())
	root.AddCommand(newSchemaCmd())
	return root
}

// collection is a loaded session plus the config it was built with.
type collection struct {
	cfg      *config.Config
	sess     *session.Session
	scanner  *interaction.Scanner
	warnings []string
}

// loadCollection reads the config and the product collection. An
// empty productsPath seeds the session with the sample products.
func loadCollection(ctx context.Context, productsPath, configPath string) (*collection, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	scanner, err := interaction.NewScanner(&cfg.Interaction)
	if err != nil {
		return nil, fmt.Errorf("interaction config: %w", err)
	}

	var (
		products []taxonomy.Product
		warnings []string
	)
	if productsPath == "" {
		logger.Debug("no product collection given, using samples")
		products = catalog.SampleProducts()
		warnings = append(warnings, "no --products given; using the sample collection")
	} else {
		res, err := loader.Load(ctx, productsPath, loader.Options{
			Config: &cfg.Loader,
			Logger: logger,
		})
		if err != nil {
			return nil, err
		}
		if len(res.Files) == 0 {
			warnings = append(warnings, fmt.Sprintf("no product files found under %s", productsPath))
		}
		logger.Info("loaded products", "files", len(res.Files), "products", len(res.Products))
		products = res.Products
	}

	sess := session.New(products, session.WithScanner(scanner))
	sess.OnChange(func(e session.Event) {
		logger.Debug("session changed", "event", e.Kind, "product", e.ProductID)
	})
	return &collection{cfg: cfg, sess: sess, scanner: scanner, warnings: warnings}, nil
}

// collectionEdits are session changes applied after loading and
// before reporting, in field order.
type collectionEdits struct {
	addStarter bool
	addCatalog []string
	addScan    bool
	remove     []string
	selectRef  string
}

func addEditFlags(cmd *cobra.Command, e *collectionEdits) {
	cmd.Flags().BoolVar(&e.addStarter, "add-starter", false,
		"add one catalog product per category")
	cmd.Flags().StringSliceVar(&e.addCatalog, "add-catalog", nil,
		"add the catalog product with this ID (repeatable)")
	cmd.Flags().BoolVar(&e.addScan, "add-scan", false,
		"add the product from the simulated camera scan")
	cmd.Flags().StringSliceVar(&e.remove, "remove", nil,
		"remove the product with this ID or name (repeatable)")
	cmd.Flags().StringVar(&e.selectRef, "select", "",
		"make the product with this ID or name active")
}

// applyEdits mutates the session and logs the resulting active
// product.
func applyEdits(sess *session.Session, e collectionEdits) error {
	if e.addStarter {
		added := sess.AddMany(catalog.InitialSelection(catalog.Curated()))
		logger.Info("added starter products", "count", len(added))
	}
	for _, id := range e.addCatalog {
		p, err := catalog.Find(catalog.Curated(), strings.TrimSpace(id))
		if err != nil {
			return err
		}
		added := sess.AddMany([]taxonomy.Product{p})
		if err := sess.Select(added[0].ID); err != nil {
			return err
		}
	}
	if e.addScan {
		p, err := sess.Add(catalog.SimulatedScan())
		if err != nil {
			return fmt.Errorf("adding scanned product: %w", err)
		}
		logger.Info("added scanned product", "id", p.ID, "name", p.DisplayName())
	}
	for _, ref := range e.remove {
		p, err := findProduct(sess, strings.TrimSpace(ref))
		if err != nil {
			return fmt.Errorf("removing: %w", err)
		}
		if err := sess.Remove(p.ID); err != nil {
			return err
		}
	}
	if e.selectRef != "" {
		p, err := findProduct(sess, strings.TrimSpace(e.selectRef))
		if err != nil {
			return fmt.Errorf("selecting: %w", err)
		}
		if err := sess.Select(p.ID); err != nil {
			return err
		}
	}

	if p, ok := sess.Active(); ok {
		logger.Debug("active product", "id", p.ID, "name", p.DisplayName())
	} else {
		logger.Debug("no active product")
	}
	return nil
}

func validateFormat(format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", format)
	}
	return nil
}

// ---------------------------------------------------------------------------
// analyze
// ---------------------------------------------------------------------------

// analyzeParams holds the parsed flags for the analyze command.
type analyzeParams struct {
	products       string
	config         string
	format         string
	minScore       int
	failOnConflict bool
	interactive    bool
	edits          collectionEdits
	stdout         io.Writer
	stderr         io.Writer
}

// runAnalyze is the extracted, testable body of the analyze command.
func runAnalyze(ctx context.Context, p analyzeParams) error {
	if err := validateFormat(p.format); err != nil {
		return err
	}
	if p.minScore < 0 || p.minScore > 100 {
		return fmt.Errorf("--min-score %d out of range 0-100", p.minScore)
	}

	start := time.Now()
	c, err := loadCollection(ctx, p.products, p.config)
	if err != nil {
		return err
	}
	if err := applyEdits(c.sess, p.edits); err != nil {
		return err
	}
	products := c.sess.Products()
	conflicts := c.scanner.Scan(products)

	rpt := report.NewAnalyzeReport(products, conflicts, taxonomy.Metadata{
		Version:   version,
		Timestamp: start.UTC(),
		Duration:  time.Since(start),
		Warnings:  c.warnings,
	})
	logger.Info("analysis complete", "products", len(products), "conflicts", len(conflicts.Pairs))

	if p.interactive {
		return runBrowser(analyzePages(rpt, c.cfg.Safety.Threshold))
	}

	switch p.format {
	case "json":
		err = report.WriteJSON(p.stdout, rpt)
	default:
		err = report.WriteTextOptions(p.stdout, rpt, report.TextOptions{Threshold: c.cfg.Safety.Threshold})
	}
	if err != nil {
		return err
	}

	printCISummary(p.stderr, rpt, p.minScore, p.failOnConflict)
	return checkCIThresholds(rpt, p.minScore, p.failOnConflict)
}

// printCISummary prints a one-line CI summary to stderr when a gate
// flag is set.
func printCISummary(w io.Writer, rpt *report.AnalyzeReport, minScore int, failOnConflict bool) {
	if minScore <= 0 && !failOnConflict {
		return
	}

	var parts []string
	if minScore > 0 {
		low := belowScore(rpt, minScore)
		status := "PASS"
		if len(low) > 0 {
			status = "FAIL"
		}
		parts = append(parts, fmt.Sprintf("Below %d: %d (%s)", minScore, len(low), status))
	}
	if failOnConflict {
		status := "PASS"
		if rpt.Conflicts.HasConflicts {
			status = "FAIL"
		}
		parts = append(parts, fmt.Sprintf("Conflicts: %d (%s)", len(rpt.Conflicts.Pairs), status))
	}
	fmt.Fprintln(w, strings.Join(parts, " | "))
}

// checkCIThresholds returns an error if any gate is exceeded.
func checkCIThresholds(rpt *report.AnalyzeReport, minScore int, failOnConflict bool) error {
	if minScore > 0 {
		if low := belowScore(rpt, minScore); len(low) > 0 {
			return fmt.Errorf("%d product(s) score below %d: %s",
				len(low), minScore, strings.Join(low, ", "))
		}
	}
	if failOnConflict && rpt.Conflicts.HasConflicts {
		return fmt.Errorf("%d conflicting product pair(s) found", len(rpt.Conflicts.Pairs))
	}
	return nil
}

func belowScore(rpt *report.AnalyzeReport, minScore int) []string {
	var names []string
	for _, pa := range rpt.Products {
		if pa.SafetyScore < minScore {
			names = append(names, pa.Product.DisplayName())
		}
	}
	return names
}

func newAnalyzeCmd(g *globalFlags) *cobra.Command {
	var (
		format         string
		minScore       int
		failOnConflict bool
		interactive    bool
		edits          collectionEdits
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze ingredients, safety, routines, and interactions",
		Long: `Classify every product's ingredients, compute safety scores,
order both routines, and scan for conflicting active ingredients.

--min-score and --fail-on-conflict turn the report into a CI gate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), analyzeParams{
				products:       g.products,
				config:         g.config,
				format:         format,
				minScore:       minScore,
				failOnConflict: failOnConflict,
				interactive:    interactive,
				edits:          edits,
				stdout:         cmd.OutOrStdout(),
				stderr:         cmd.ErrOrStderr(),
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	cmd.Flags().IntVar(&minScore, "min-score", 0,
		"fail if any product scores below this (0 = no limit)")
	cmd.Flags().BoolVar(&failOnConflict, "fail-on-conflict", false,
		"fail if any conflicting product pair is found")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"launch interactive TUI for browsing results")
	addEditFlags(cmd, &edits)
	return cmd
}

// ---------------------------------------------------------------------------
// routine
// ---------------------------------------------------------------------------

type routineParams struct {
	products    string
	config      string
	times       []taxonomy.TimeOfDay
	format      string
	interactive bool
	edits       collectionEdits
	stdout      io.Writer
}

func runRoutine(ctx context.Context, p routineParams) error {
	if err := validateFormat(p.format); err != nil {
		return err
	}
	c, err := loadCollection(ctx, p.products, p.config)
	if err != nil {
		return err
	}
	if err := applyEdits(c.sess, p.edits); err != nil {
		return err
	}

	routines := make([]routine.Routine, 0, len(p.times))
	for _, t := range p.times {
		routines = append(routines, c.sess.Routine(t))
	}

	if p.interactive {
		return runBrowser(routinePages(routines))
	}

	for i, rt := range routines {
		if p.format == "json" {
			err = report.WriteRoutineJSON(p.stdout, rt)
		} else {
			if i > 0 {
				fmt.Fprintln(p.stdout)
			}
			err = report.WriteRoutineText(p.stdout, rt)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// parseTimes maps an optional time-of-day argument to the routines
// to print. No argument means both.
func parseTimes(args []string) ([]taxonomy.TimeOfDay, error) {
	if len(args) == 0 {
		return append([]taxonomy.TimeOfDay(nil), taxonomy.TimesOfDay...), nil
	}
	t, err := taxonomy.ParseTimeOfDay(args[0])
	if err != nil {
		return nil, err
	}
	return []taxonomy.TimeOfDay{t}, nil
}

func newRoutineCmd(g *globalFlags) *cobra.Command {
	var (
		format      string
		interactive bool
		edits       collectionEdits
	)

	cmd := &cobra.Command{
		Use:       "routine [morning|evening]",
		Short:     "Print the ordered morning and evening routines",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(taxonomy.Morning), string(taxonomy.Evening)},
		RunE: func(cmd *cobra.Command, args []string) error {
			times, err := parseTimes(args)
			if err != nil {
				return err
			}
			return runRoutine(cmd.Context(), routineParams{
				products:    g.products,
				config:      g.config,
				times:       times,
				format:      format,
				interactive: interactive,
				edits:       edits,
				stdout:      cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"launch interactive TUI for browsing routines")
	addEditFlags(cmd, &edits)
	return cmd
}

// ---------------------------------------------------------------------------
// check
// ---------------------------------------------------------------------------

type checkParams struct {
	products string
	config   string
	format   string
	edits    collectionEdits
	stdout   io.Writer
}

// runCheck prints the interaction report and fails when any pair
// conflicts.
func runCheck(ctx context.Context, p checkParams) error {
	if err := validateFormat(p.format); err != nil {
		return err
	}
	c, err := loadCollection(ctx, p.products, p.config)
	if err != nil {
		return err
	}
	if err := applyEdits(c.sess, p.edits); err != nil {
		return err
	}

	rpt := c.sess.Contraindications()
	if rpt == nil {
		logger.Warn("fewer than two products, nothing to compare")
		none := c.scanner.Scan(nil)
		rpt = &none
	}

	if p.format == "json" {
		err = report.WriteConflictsJSON(p.stdout, *rpt)
	} else {
		err = report.WriteConflictsText(p.stdout, *rpt)
	}
	if err != nil {
		return err
	}

	if rpt.HasConflicts {
		return fmt.Errorf("%d conflicting product pair(s) found", len(rpt.Pairs))
	}
	return nil
}

func newCheckCmd(g *globalFlags) *cobra.Command {
	var (
		format string
		edits  collectionEdits
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the collection for conflicting active ingredients",
		Long: `Scan the collection for product pairs that share a routine and
combine ingredients known to interact poorly (retinoids with AHAs or
vitamin C). Exits non-zero when a conflict is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), checkParams{
				products: g.products,
				config:   g.config,
				format:   format,
				edits:    edits,
				stdout:   cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	addEditFlags(cmd, &edits)
	return cmd
}

// ---------------------------------------------------------------------------
// safety
// ---------------------------------------------------------------------------

type safetyParams struct {
	products   string
	config     string
	format     string
	maxFlagged int
	stdout     io.Writer
}

func runSafety(ctx context.Context, p safetyParams) error {
	if err := validateFormat(p.format); err != nil {
		return err
	}
	c, err := loadCollection(ctx, p.products, p.config)
	if err != nil {
		return err
	}

	rpt := safety.Analyze(c.sess.Products(), safety.Options{Threshold: c.cfg.Safety.Threshold})
	if p.format == "json" {
		err = safety.WriteJSON(p.stdout, rpt)
	} else {
		err = safety.WriteText(p.stdout, rpt)
	}
	if err != nil {
		return err
	}

	if p.maxFlagged >= 0 && rpt.Summary.Flagged > p.maxFlagged {
		return fmt.Errorf("%d product(s) flagged below %d, maximum %d",
			rpt.Summary.Flagged, rpt.Summary.Threshold, p.maxFlagged)
	}
	return nil
}

func newSafetyCmd(g *globalFlags) *cobra.Command {
	var (
		format     string
		maxFlagged int
	)

	cmd := &cobra.Command{
		Use:   "safety",
		Short: "Report safety scores for every product",
		Long: `Compute the safety score of every product (share of ingredients
without a flagged concern) and list the lowest scoring products.
The flag threshold comes from safety.threshold in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSafety(cmd.Context(), safetyParams{
				products:   g.products,
				config:     g.config,
				format:     format,
				maxFlagged: maxFlagged,
				stdout:     cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	cmd.Flags().IntVar(&maxFlagged, "max-flagged", -1,
		"fail if more products than this are flagged (-1 = no limit)")
	return cmd
}

// ---------------------------------------------------------------------------
// catalog
// ---------------------------------------------------------------------------

type catalogParams struct {
	category string
	limit    int
	format   string
	stdout   io.Writer
}

func runCatalog(p catalogParams) error {
	if err := validateFormat(p.format); err != nil {
		return err
	}

	products := catalog.Curated()
	if p.category != "" && p.category != session.AllCategories {
		c, err := taxonomy.ParseCategory(p.category)
		if err != nil {
			return err
		}
		products = catalog.ByCategory(products, c, p.limit)
	} else if p.limit > 0 && len(products) > p.limit {
		products = products[:p.limit]
	}

	if p.format == "json" {
		return report.WriteProductsJSON(p.stdout, products)
	}
	return report.WriteProductsText(p.stdout, products)
}

func newCatalogCmd() *cobra.Command {
	var p catalogParams

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the curated product catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p.stdout = cmd.OutOrStdout()
			return runCatalog(p)
		},
	}

	cmd.Flags().StringVarP(&p.category, "category", "c", "",
		"only list this category")
	cmd.Flags().IntVar(&p.limit, "limit", 0, "maximum products to list (0 = all)")
	cmd.Flags().StringVar(&p.format, "format", "text", "output format: text or json")
	return cmd
}

// ---------------------------------------------------------------------------
// suggest
// ---------------------------------------------------------------------------

type suggestParams struct {
	products string
	config   string
	format   string
	stdout   io.Writer
}

// runSuggest lists one catalog product for each routine category the
// collection lacks.
func runSuggest(ctx context.Context, p suggestParams) error {
	if err := validateFormat(p.format); err != nil {
		return err
	}
	c, err := loadCollection(ctx, p.products, p.config)
	if err != nil {
		return err
	}

	suggestions := catalog.Suggestions(c.sess.Products(), catalog.Curated())
	if p.format == "json" {
		return report.WriteProductsJSON(p.stdout, suggestions)
	}
	if len(suggestions) == 0 {
		fmt.Fprintln(p.stdout, "Your collection covers every routine category.")
		return nil
	}
	return report.WriteProductsText(p.stdout, suggestions)
}

func newSuggestCmd(g *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest catalog products for missing routine steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(cmd.Context(), suggestParams{
				products: g.products,
				config:   g.config,
				format:   format,
				stdout:   cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	return cmd
}

// ---------------------------------------------------------------------------
// advise / recommend
// ---------------------------------------------------------------------------

// answerJSON is the JSON shape of an advisor reply.
type answerJSON struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
	Cached   bool   `json:"cached"`
}

func writeAnswer(w io.Writer, format string, a advisor.Answer) error {
	if a.Fallback {
		logger.Warn("advisor unavailable, showing fallback text")
	}
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(answerJSON{Text: a.Text, Fallback: a.Fallback, Cached: a.Cached})
	}
	_, err := fmt.Fprintln(w, strings.TrimSpace(a.Text))
	return err
}

// newAdvisor builds an advisor from the config. gen overrides the
// configured backend. A missing API key is not an error: the advisor
// then answers with its fallback texts.
func newAdvisor(ctx context.Context, cfg *config.Config, gen advisor.Generator) *advisor.Advisor {
	if gen == nil {
		g, err := advisor.GeneratorFromConfig(ctx, &cfg.Advisor)
		switch {
		case err == nil:
			gen = g
		case errors.Is(err, advisor.ErrNoAPIKey):
			logger.Warn("advisor disabled", "reason", err)
		default:
			logger.Error("advisor backend unavailable", "err", err)
		}
	}
	return advisor.New(gen, advisor.Options{Config: &cfg.Advisor, Logger: logger})
}

type adviseParams struct {
	products    string
	config      string
	target      string
	ingredients string
	format      string
	generator   advisor.Generator
	stdout      io.Writer
}

// runAdvise asks the advisor about one product. target is a product ID
// from the collection, or a product name when ingredients is set.
func runAdvise(ctx context.Context, p adviseParams) error {
	if err := validateFormat(p.format); err != nil {
		return err
	}
	c, err := loadCollection(ctx, p.products, p.config)
	if err != nil {
		return err
	}

	name := p.target
	var ingredients []string
	switch {
	case p.ingredients != "":
		for _, ing := range catalog.ParseIngredientList(p.ingredients) {
			ingredients = append(ingredients, ing.Name)
		}
	default:
		prod, err := findProduct(c.sess, p.target)
		if err != nil {
			return err
		}
		name = prod.DisplayName()
		ingredients = prod.IngredientNames()
	}

	adv := newAdvisor(ctx, c.cfg, p.generator)
	ans, err := adv.AnalyzeProduct(ctx, name, ingredients)
	if err != nil {
		return err
	}
	return writeAnswer(p.stdout, p.format, ans)
}

// findProduct looks a product up by ID, then by a unique name match.
func findProduct(sess *session.Session, ref string) (taxonomy.Product, error) {
	if p, err := sess.Get(ref); err == nil {
		return p, nil
	}
	matches := sess.Filter(ref, session.AllCategories)
	switch len(matches) {
	case 0:
		return taxonomy.Product{}, fmt.Errorf("%q: %w", ref, session.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.DisplayName()
		}
		return taxonomy.Product{}, fmt.Errorf("%q matches %d products: %s",
			ref, len(matches), strings.Join(names, "; "))
	}
}

func newAdviseCmd(g *globalFlags) *cobra.Command {
	var (
		format      string
		ingredients string
	)

	cmd := &cobra.Command{
		Use:   "advise <product>",
		Short: "Ask the advisor for an assessment of a product",
		Long: `Ask the language-model advisor for a short assessment of a
product's likely benefits and concerns. <product> is an ID or name
from the collection; with --ingredients it is a free-form name.

The API key is read from the environment variable named by
advisor.api_key_env (default GEMINI_API_KEY). Without a key, a
fallback message is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdvise(cmd.Context(), adviseParams{
				products:    g.products,
				config:      g.config,
				target:      args[0],
				ingredients: ingredients,
				format:      format,
				stdout:      cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVar(&ingredients, "ingredients", "",
		"comma-separated ingredient list for a product not in the collection")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	return cmd
}

type recommendParams struct {
	config    string
	skinType  string
	concerns  []string
	budget    string
	format    string
	generator advisor.Generator
	stdout    io.Writer
}

func runRecommend(ctx context.Context, p recommendParams) error {
	if err := validateFormat(p.format); err != nil {
		return err
	}
	if p.skinType != "" && !contains(catalog.SkinTypes, p.skinType) {
		return fmt.Errorf("invalid skin type %q: must be one of %s",
			p.skinType, strings.Join(catalog.SkinTypes, ", "))
	}
	if p.budget != "" && !contains(catalog.Budgets, p.budget) {
		return fmt.Errorf("invalid budget %q: must be one of %s",
			p.budget, strings.Join(catalog.Budgets, ", "))
	}
	for _, c := range p.concerns {
		if !contains(catalog.CommonConcerns, c) {
			logger.Debug("concern not in the common list", "concern", c)
		}
	}

	cfg, err := config.Load(p.config)
	if err != nil {
		return err
	}
	adv := newAdvisor(ctx, cfg, p.generator)
	ans, err := adv.Recommend(ctx, advisor.Profile{
		SkinType: p.skinType,
		Concerns: p.concerns,
		Budget:   p.budget,
	})
	if err != nil {
		return err
	}
	return writeAnswer(p.stdout, p.format, ans)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func newRecommendCmd(g *globalFlags) *cobra.Command {
	p := recommendParams{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Ask the advisor for product recommendations",
		Long: `Ask the language-model advisor to recommend products for a
skin type, a list of concerns, and a budget.

Skin types: ` + strings.Join(catalog.SkinTypes, ", ") + `
Budgets:    ` + strings.Join(catalog.Budgets, ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p.config = g.config
			p.stdout = cmd.OutOrStdout()
			return runRecommend(cmd.Context(), p)
		},
	}

	cmd.Flags().StringVar(&p.skinType, "skin-type", "", "your skin type (required)")
	cmd.Flags().StringSliceVar(&p.concerns, "concern", nil,
		"a skin concern (repeatable), e.g. Acne,Redness")
	cmd.Flags().StringVar(&p.budget, "budget", "", "budget (default: "+advisor.DefaultBudget+")")
	cmd.Flags().StringVar(&p.format, "format", "text", "output format: text or json")
	_ = cmd.MarkFlagRequired("skin-type")
	return cmd
}

// ---------------------------------------------------------------------------
// init / schema
// ---------------------------------------------------------------------------

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter products.yaml and .dermis.yaml",
		Long: `Write a starter product collection (products.yaml) and config
file (.dermis.yaml) to dir, or the current directory. Existing files
are skipped unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := scaffold.Options{
				Force:   force,
				Version: version,
				Stdout:  cmd.OutOrStdout(),
			}
			if len(args) == 1 {
				opts.TargetDir = args[0]
			}
			_, err := scaffold.Run(opts)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for dermis analyze output",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of dermis analyze --format=json output. Useful for
validating output or generating client types.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.Schema)
			return err
		},
	}
}
