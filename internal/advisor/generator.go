package advisor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/unbound-force/dermis/internal/config"
)

// ErrNoAPIKey is returned when no API key is available for the
// generative backend.
var ErrNoAPIKey = errors.New("no API key configured")

// Prompt is a single generation request.
type Prompt struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int32
}

// Generator produces free text for a prompt.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// GenAIGenerator generates text with Google's Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

// NewGenAIGenerator creates a Gemini-backed generator.
func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = config.DefaultConfig().Advisor.Model
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GenAI client: %w", err)
	}
	return &GenAIGenerator{client: client, model: model}, nil
}

// GeneratorFromConfig reads the API key from the environment variable
// named in cfg and creates a Gemini-backed generator.
func GeneratorFromConfig(ctx context.Context, cfg *config.AdvisorConfig) (*GenAIGenerator, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("%w: set %s", ErrNoAPIKey, cfg.APIKeyEnv)
	}
	return NewGenAIGenerator(ctx, key, cfg.Model)
}

// Generate implements Generator.
func (g *GenAIGenerator) Generate(ctx context.Context, p Prompt) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(p.Temperature),
		MaxOutputTokens: p.MaxTokens,
	}
	if p.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.System, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(p.User), cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return resp.Text(), nil
}
