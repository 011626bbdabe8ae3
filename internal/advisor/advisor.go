// Package advisor asks a language model for free-text product
// assessments and routine recommendations.
//
// Answers are advisory only. A missing backend, a timeout, or an empty
// response degrades to a fixed fallback text.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/unbound-force/dermis/internal/config"
)

// Fallback texts returned when the backend cannot answer.
const (
	FallbackAnalysis       = "Unable to analyze this product at the moment. Please try again later."
	FallbackRecommendation = "Unable to provide recommendations at the moment. Please try again later."
)

// DefaultBudget is used when a profile leaves the budget empty.
const DefaultBudget = "budget-friendly"

const (
	analysisSystem  = "You are a skincare expert who analyzes products and their ingredients. Be concise but informative."
	recommendSystem = "You are a skincare expert who provides personalized product recommendations. Be concise and specific."
)

// ErrSkinTypeRequired is returned by Recommend for a profile without
// a skin type.
var ErrSkinTypeRequired = errors.New("skin type is required")

// ErrProductNameRequired is returned by AnalyzeProduct for an empty
// product name.
var ErrProductNameRequired = errors.New("product name is required")

// Profile describes the user asking for recommendations.
type Profile struct {
	SkinType string
	Concerns []string
	Budget   string
}

// Answer is an advisor reply.
type Answer struct {
	Text string

	// Fallback is set when Text is a fallback message.
	Fallback bool

	// Cached is set when Text came from the response cache.
	Cached bool
}

// Options configures an Advisor.
type Options struct {
	// Config supplies the timeout, cache TTL, temperatures, and token
	// limit. If nil, config.DefaultConfig().Advisor is used.
	Config *config.AdvisorConfig

	// Logger receives backend failures. If nil, log.Default() is used.
	Logger *log.Logger

	// Now is the clock used for cache expiry. If nil, time.Now is used.
	Now func() time.Time
}

type cacheEntry struct {
	text    string
	expires time.Time
}

// Advisor wraps a Generator with prompts, a per-call timeout, a TTL
// response cache, and request collapsing. It is safe for concurrent use.
type Advisor struct {
	gen    Generator
	cfg    config.AdvisorConfig
	logger *log.Logger
	now    func() time.Time

	group singleflight.Group

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// New returns an Advisor. gen may be nil, in which case every request
// returns its fallback text.
func New(gen Generator, opts Options) *Advisor {
	a := &Advisor{
		gen:    gen,
		logger: opts.Logger,
		now:    opts.Now,
		cache:  make(map[string]cacheEntry),
	}
	if opts.Config != nil {
		a.cfg = *opts.Config
	} else {
		a.cfg = config.DefaultConfig().Advisor
	}
	if a.logger == nil {
		a.logger = log.Default()
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a
}

// AnalysisPrompt builds the product assessment prompt.
func (a *Advisor) AnalysisPrompt(name string, ingredients []string) Prompt {
	return Prompt{
		System: analysisSystem,
		User: fmt.Sprintf("Analyze this skincare product: \"%s\" with these ingredients: %s. "+
			"Provide a brief assessment of its likely benefits, potential concerns, "+
			"and what skin types it would work best for.",
			name, strings.Join(ingredients, ", ")),
		Temperature: a.cfg.AnalysisTemperature,
		MaxTokens:   a.cfg.MaxTokens,
	}
}

// RecommendPrompt builds the recommendation prompt.
func (a *Advisor) RecommendPrompt(p Profile) Prompt {
	budget := p.Budget
	if strings.TrimSpace(budget) == "" {
		budget = DefaultBudget
	}
	return Prompt{
		System: recommendSystem,
		User: fmt.Sprintf("Recommend skincare products for my %s skin. "+
			"My main skin concerns are: %s. My budget is %s. "+
			"Suggest specific products for a simple routine and explain why you recommend each one.",
			p.SkinType, strings.Join(p.Concerns, ", "), budget),
		Temperature: a.cfg.RecommendTemperature,
		MaxTokens:   a.cfg.MaxTokens,
	}
}

// AnalyzeProduct asks for a short assessment of a product.
func (a *Advisor) AnalyzeProduct(ctx context.Context, name string, ingredients []string) (Answer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Answer{}, ErrProductNameRequired
	}
	key := cacheKey("analyze", name, strings.Join(ingredients, ","))
	return a.ask(ctx, key, a.AnalysisPrompt(name, ingredients), FallbackAnalysis), nil
}

// Recommend asks for product recommendations for a profile.
func (a *Advisor) Recommend(ctx context.Context, p Profile) (Answer, error) {
	p.SkinType = strings.TrimSpace(p.SkinType)
	if p.SkinType == "" {
		return Answer{}, ErrSkinTypeRequired
	}
	if strings.TrimSpace(p.Budget) == "" {
		p.Budget = DefaultBudget
	}
	key := cacheKey("recommend", p.SkinType, strings.Join(concernKey(p.Concerns), ","), p.Budget)
	return a.ask(ctx, key, a.RecommendPrompt(p), FallbackRecommendation), nil
}

func (a *Advisor) ask(ctx context.Context, key string, prompt Prompt, fallback string) Answer {
	if text, ok := a.lookup(key); ok {
		a.logger.Debug("advisor cache hit", "key", key)
		return Answer{Text: text, Cached: true}
	}
	if a.gen == nil {
		a.logger.Warn("advisor unavailable: no generator configured")
		return Answer{Text: fallback, Fallback: true}
	}

	// The shared request outlives any single caller; each caller stops
	// waiting on its own cancellation.
	ch := a.group.DoChan(key, func() (interface{}, error) {
		callCtx := context.WithoutCancel(ctx)
		if a.cfg.Timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(callCtx, a.cfg.Timeout)
			defer cancel()
		}

		start := a.now()
		text, err := a.gen.Generate(callCtx, prompt)
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return "", errors.New("empty response")
		}
		a.logger.Debug("advisor answered", "key", key, "elapsed", a.now().Sub(start))
		a.store(key, text)
		return text, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		a.logger.Warn("advisor request abandoned", "err", ctx.Err())
		return Answer{Text: fallback, Fallback: true}
	}
	if res.Err != nil {
		a.logger.Warn("advisor request failed", "err", res.Err)
		return Answer{Text: fallback, Fallback: true}
	}
	if res.Shared {
		a.logger.Debug("advisor request shared", "key", key)
	}
	return Answer{Text: res.Val.(string)}
}

func (a *Advisor) lookup(key string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	e, ok := a.cache[key]
	if !ok {
		return "", false
	}
	if !a.now().Before(e.expires) {
		delete(a.cache, key)
		return "", false
	}
	return e.text, true
}

func (a *Advisor) store(key, text string) {
	if a.cfg.CacheTTL <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cache[key] = cacheEntry{text: text, expires: a.now().Add(a.cfg.CacheTTL)}
}

// concernKey returns the normalized, non-empty concerns, sorted.
func concernKey(concerns []string) []string {
	out := make([]string, 0, len(concerns))
	for _, c := range concerns {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// cacheKey normalizes request fields so trivially different requests
// share an answer.
func cacheKey(kind string, parts ...string) string {
	norm := make([]string, len(parts))
	for i, p := range parts {
		norm[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return kind + "\x00" + strings.Join(norm, "\x00")
}
