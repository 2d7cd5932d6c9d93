package diarization

import (
	"fmt"
	"time"

	"github.com/kbukum/meetnotes/provider"
)

// Provider is a diarization backend.
type Provider = provider.RequestResponse[Request, *Diarization]

var registry = provider.NewRegistry[Provider]()

// RegisterFactory makes a backend available to NewProvider under name.
func RegisterFactory(name string, f provider.Factory[Provider]) {
	registry.RegisterFactory(name, f)
}

// Providers lists the registered backend names.
func Providers() []string { return registry.List() }

// NewProvider creates the backend selected by cfg.Provider.
func NewProvider(cfg Config) (Provider, error) {
	cfg.ApplyDefaults()
	p, err := registry.Create(cfg.Provider, map[string]any{
		"url":      cfg.URL,
		"hf_token": cfg.HFToken,
		"timeout":  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("diarization: %w", err)
	}
	return p, nil
}

const (
	defaultProvider = "pyannote"
	defaultTimeout  = 300 * time.Second
)

// Config selects and configures the diarization backend.
type Config struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
	URL      string `yaml:"url" mapstructure:"url"`

	// HFToken authenticates the engine's model download. Set it through
	// configuration or DIARIZATION_HF_TOKEN; it is never compiled in.
	HFToken string `yaml:"hf_token" mapstructure:"hf_token" json:"-"`

	NumSpeakers int           `yaml:"num_speakers" mapstructure:"num_speakers" validate:"gte=0"`
	MinSpeakers int           `yaml:"min_speakers" mapstructure:"min_speakers" validate:"gte=0"`
	MaxSpeakers int           `yaml:"max_speakers" mapstructure:"max_speakers" validate:"gte=0"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// PerChunkSpeakers prefixes speaker ids with the chunk index, for
	// engines whose labels are not stable across calls.
	PerChunkSpeakers bool `yaml:"per_chunk_speakers" mapstructure:"per_chunk_speakers"`

	Resilience provider.ResilienceConfig `yaml:"resilience" mapstructure:"resilience"`
}

// ApplyDefaults fills zero fields.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = defaultProvider
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks the speaker bounds.
func (c *Config) Validate() error {
	if c.NumSpeakers < 0 || c.MinSpeakers < 0 || c.MaxSpeakers < 0 {
		return fmt.Errorf("diarization: speaker counts must not be negative")
	}
	if c.MaxSpeakers > 0 && c.MinSpeakers > c.MaxSpeakers {
		return fmt.Errorf("diarization: min_speakers exceeds max_speakers")
	}
	return nil
}
