package transcription

import (
	"fmt"
	"time"

	"github.com/kbukum/meetnotes/provider"
)

// Provider is a transcription backend.
type Provider = provider.RequestResponse[Request, *Transcript]

var registry = provider.NewRegistry[Provider]()

// RegisterFactory makes a backend available to New under name.
func RegisterFactory(name string, f provider.Factory[Provider]) {
	registry.RegisterFactory(name, f)
}

// Providers lists the registered backend names.
func Providers() []string { return registry.List() }

// NewProvider creates the backend selected by cfg.Provider.
func NewProvider(cfg Config) (Provider, error) {
	cfg.ApplyDefaults()
	p, err := registry.Create(cfg.Provider, cfg.factoryMap())
	if err != nil {
		return nil, fmt.Errorf("transcription: %w", err)
	}
	return p, nil
}

const (
	defaultProvider = "whisper"
	defaultLanguage = "en"
	defaultTimeout  = 300 * time.Second

	// TaskTranslate translates speech into the configured language.
	TaskTranslate = "translate"
	// TaskTranscribe keeps the spoken language.
	TaskTranscribe = "transcribe"
)

// Config selects and configures the transcription backend.
type Config struct {
	Provider string        `yaml:"provider" mapstructure:"provider"`
	URL      string        `yaml:"url" mapstructure:"url"`
	Model    string        `yaml:"model" mapstructure:"model"`
	Language string        `yaml:"language" mapstructure:"language"`
	Task     string        `yaml:"task" mapstructure:"task" validate:"omitempty,oneof=translate transcribe"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`

	Resilience provider.ResilienceConfig `yaml:"resilience" mapstructure:"resilience"`
}

// ApplyDefaults fills zero fields. Translation into English matches what
// the summary prompts expect.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = defaultProvider
	}
	if c.Language == "" {
		c.Language = defaultLanguage
	}
	if c.Task == "" {
		c.Task = TaskTranslate
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks the config.
func (c *Config) Validate() error {
	if c.Task != TaskTranslate && c.Task != TaskTranscribe {
		return fmt.Errorf("transcription: task must be %q or %q", TaskTranslate, TaskTranscribe)
	}
	return nil
}

func (c Config) factoryMap() map[string]any {
	return map[string]any{
		"url":      c.URL,
		"model":    c.Model,
		"language": c.Language,
		"task":     c.Task,
		"timeout":  c.Timeout,
	}
}
