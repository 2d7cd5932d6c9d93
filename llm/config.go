package llm

import (
	"fmt"
	"time"

	"github.com/kbukum/meetnotes/provider"
)

const (
	defaultDialect = "gemini"
	defaultTimeout = 120 * time.Second
)

// Config holds configuration for creating an LLM adapter.
type Config struct {
	// Dialect selects the provider mapping ("gemini", "ollama").
	Dialect string `yaml:"dialect" mapstructure:"dialect"`

	// BaseURL is the provider's API base URL. Empty uses the dialect default.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// APIKey is the provider credential. Only ever read from configuration.
	APIKey string `yaml:"api_key" mapstructure:"api_key" json:"-"`

	// Model is the default model to use.
	Model string `yaml:"model" mapstructure:"model" validate:"required"`

	// Temperature is the default sampling temperature (0.0-1.0).
	Temperature float64 `yaml:"temperature" mapstructure:"temperature" validate:"gte=0,lte=2"`

	// MaxTokens is the default maximum tokens for responses. 0 means provider default.
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens" validate:"gte=0"`

	// Timeout for HTTP requests. Defaults to 120s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Resilience wraps generation calls with retry and circuit breaking.
	Resilience provider.ResilienceConfig `yaml:"resilience" mapstructure:"resilience"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.Dialect == "" {
		c.Dialect = defaultDialect
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks the fields that do not depend on the dialect.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("llm: model is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("llm: temperature must be between 0 and 2")
	}
	return nil
}
