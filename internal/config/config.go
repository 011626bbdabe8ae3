// Package config loads dermis configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the working
// directory when no explicit path is given.
const DefaultFileName = ".dermis.yaml"

// Config is the top-level dermis configuration.
type Config struct {
	Advisor     AdvisorConfig     `yaml:"advisor"`
	Interaction InteractionConfig `yaml:"interaction"`
	Safety      SafetyConfig      `yaml:"safety"`
	Loader      LoaderConfig      `yaml:"loader"`
}

// AdvisorConfig configures the language-model advisor.
type AdvisorConfig struct {
	// Model is the generative model name.
	Model string `yaml:"model"`

	// APIKeyEnv names the environment variable holding the API key.
	// The key itself is never stored in the config file.
	APIKeyEnv string `yaml:"api_key_env"`

	// Timeout bounds a single generation request.
	Timeout time.Duration `yaml:"timeout"`

	// CacheTTL is how long a generated answer is reused for an
	// identical request. Zero disables caching.
	CacheTTL time.Duration `yaml:"cache_ttl"`

	AnalysisTemperature  float32 `yaml:"analysis_temperature"`
	RecommendTemperature float32 `yaml:"recommend_temperature"`
	MaxTokens            int32   `yaml:"max_tokens"`
}

// InteractionConfig extends the contraindication scanner.
type InteractionConfig struct {
	// Families adds keyword patterns to ingredient families. Patterns
	// for an existing family are appended; unknown families are created.
	Families map[string][]string `yaml:"families"`

	// Rules adds conflict rules between two families.
	Rules []RuleConfig `yaml:"rules"`
}

// RuleConfig declares a conflict between two ingredient families.
type RuleConfig struct {
	Name   string `yaml:"name"`
	First  string `yaml:"first"`
	Second string `yaml:"second"`
}

// SafetyConfig configures safety score reporting.
type SafetyConfig struct {
	// Threshold is the score below which a product is flagged, 1-100.
	// Zero is rejected since it would flag nothing and read as unset.
	Threshold int `yaml:"threshold"`
}

// LoaderConfig configures directory loading of product files.
type LoaderConfig struct {
	Include []string      `yaml:"include"`
	Exclude []string      `yaml:"exclude"`
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Advisor: AdvisorConfig{
			Model:                "gemini-2.0-flash",
			APIKeyEnv:            "GEMINI_API_KEY",
			Timeout:              30 * time.Second,
			CacheTTL:             time.Hour,
			AnalysisTemperature:  0.2,
			RecommendTemperature: 0.3,
			MaxTokens:            1000,
		},
		Safety: SafetyConfig{
			Threshold: 70,
		},
		Loader: LoaderConfig{
			Exclude: []string{"testdata/**", "vendor/**", ".*"},
			Timeout: 10 * time.Second,
		},
	}
}

// Load reads the config file at path on top of DefaultConfig. A
// missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Safety.Threshold < 1 || c.Safety.Threshold > 100 {
		return fmt.Errorf("safety.threshold %d out of range 1-100", c.Safety.Threshold)
	}
	if c.Advisor.Timeout < 0 {
		return fmt.Errorf("advisor.timeout must not be negative")
	}
	if c.Advisor.CacheTTL < 0 {
		return fmt.Errorf("advisor.cache_ttl must not be negative")
	}
	for i, r := range c.Interaction.Rules {
		if r.First == "" || r.Second == "" {
			return fmt.Errorf("interaction.rules[%d]: first and second families are required", i)
		}
	}
	for name, patterns := range c.Interaction.Families {
		if len(patterns) == 0 {
			return fmt.Errorf("interaction.families.%s: at least one pattern is required", name)
		}
	}
	return nil
}
