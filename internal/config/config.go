// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/candidate-matcher/internal/metrics"
	"github.com/jonathan/candidate-matcher/internal/ranking"
	"github.com/jonathan/candidate-matcher/internal/retrieval"
)

// DatabaseURLEnv is read when the config file does not set database_url
const DatabaseURLEnv = "DATABASE_URL"

// DefaultTopK is the number of ranked candidates returned when neither flag nor file sets one
const DefaultTopK = 10

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Scoring
	Weights *metrics.Weights `json:"weights,omitempty"`
	Tuning  *metrics.Tuning  `json:"tuning,omitempty"`

	// Ranking
	TopK          int      `json:"top_k,omitempty" validate:"omitempty,min=1,max=1000"`
	SearchLimit   int      `json:"search_limit,omitempty" validate:"omitempty,min=1"`
	MinSimilarity *float64 `json:"min_similarity,omitempty" validate:"omitempty,min=0,max=1"`
	Concurrency   int      `json:"concurrency,omitempty" validate:"omitempty,min=1,max=256"`

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	StorePath   string `json:"store_path,omitempty"`   // chromem persistence directory; empty keeps the index in memory
	Collection  string `json:"collection,omitempty" validate:"omitempty,max=128"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"`
	LogJSON bool `json:"log_json,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Defaults returns the configuration used when nothing else is supplied
func Defaults() Config {
	weights := metrics.DefaultWeights()
	tuning := metrics.DefaultTuning()
	minSimilarity := ranking.DefaultMinSimilarity
	return Config{
		Weights:       &weights,
		Tuning:        &tuning,
		TopK:          DefaultTopK,
		MinSimilarity: &minSimilarity,
		Concurrency:   ranking.DefaultConcurrency,
		Collection:    retrieval.DefaultCollection,
	}
}

// LoadConfig loads configuration from a JSON file.
// A partial "tuning" object overrides only the constants it names.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var raw struct {
		Tuning json.RawMessage `json:"tuning"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	var cfg Config
	if len(raw.Tuning) > 0 && string(raw.Tuning) != "null" {
		tuning := metrics.DefaultTuning()
		cfg.Tuning = &tuning
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required inputs are checked by the CLI after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check (got %v)", fe.Field(), fe.ActualTag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Weights != nil {
		if err := c.Weights.Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if c.Tuning != nil {
		if err := c.Tuning.Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if c.SearchLimit > 0 && c.TopK > 0 && c.SearchLimit < c.TopK {
		return fmt.Errorf("config error: 'search_limit' (%d) must be at least 'top_k' (%d)", c.SearchLimit, c.TopK)
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// Booleans are not merged; CLI flags always win for them.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Weights == nil {
		result.Weights = defaults.Weights
	}
	if result.Tuning == nil {
		result.Tuning = defaults.Tuning
	}
	if result.MinSimilarity == nil {
		result.MinSimilarity = defaults.MinSimilarity
	}

	if result.TopK == 0 {
		result.TopK = defaults.TopK
	}
	if result.SearchLimit == 0 {
		result.SearchLimit = defaults.SearchLimit
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.StorePath == "" {
		result.StorePath = defaults.StorePath
	}
	if result.Collection == "" {
		result.Collection = defaults.Collection
	}

	return result
}

// ApplyEnv fills the database URL from the environment when it is not configured
func (c *Config) ApplyEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv(DatabaseURLEnv)
	}
}

// CalculatorOptions turns the scoring settings into metrics.Calculator options
func (c *Config) CalculatorOptions() []metrics.Option {
	var opts []metrics.Option
	if c.Weights != nil {
		opts = append(opts, metrics.WithWeights(*c.Weights))
	}
	if c.Tuning != nil {
		opts = append(opts, metrics.WithTuning(*c.Tuning))
	}
	return opts
}
