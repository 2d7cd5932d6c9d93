package main

import (
	"errors"

	"github.com/kbukum/meetnotes/alignment"
	"github.com/kbukum/meetnotes/config"
	"github.com/kbukum/meetnotes/diarization"
	"github.com/kbukum/meetnotes/handler"
	"github.com/kbukum/meetnotes/llm"
	"github.com/kbukum/meetnotes/observability"
	"github.com/kbukum/meetnotes/pipeline"
	"github.com/kbukum/meetnotes/report"
	"github.com/kbukum/meetnotes/segmenter"
	"github.com/kbukum/meetnotes/server"
	"github.com/kbukum/meetnotes/storage"
	"github.com/kbukum/meetnotes/summary"
	"github.com/kbukum/meetnotes/transcription"
	"github.com/kbukum/meetnotes/validation"
	"github.com/kbukum/meetnotes/version"
)

const (
	serviceName  = "meetnotes"
	defaultModel = "gemini-1.5-flash"
)

// AppConfig is the full meetnotes configuration. Credentials
// (diarization.hf_token, llm.api_key) are only read from config.yml or the
// environment, for example DIARIZATION_HF_TOKEN and LLM_API_KEY.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Storage       storage.Config       `yaml:"storage" mapstructure:"storage"`
	Segmenter     segmenter.Options    `yaml:"segmenter" mapstructure:"segmenter"`
	Transcription transcription.Config `yaml:"transcription" mapstructure:"transcription"`
	Diarization   diarization.Config   `yaml:"diarization" mapstructure:"diarization"`
	LLM           llm.Config           `yaml:"llm" mapstructure:"llm"`
	Summary       summary.Config       `yaml:"summary" mapstructure:"summary"`
	Alignment     alignment.Options    `yaml:"alignment" mapstructure:"alignment"`
	Pipeline      pipeline.Config      `yaml:"pipeline" mapstructure:"pipeline"`
	Report        report.Config        `yaml:"report" mapstructure:"report"`
	Handler       handler.Config       `yaml:"handler" mapstructure:"handler"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills every section.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Get().Version
	}
	c.ServiceConfig.ApplyDefaults()

	if c.LLM.Model == "" {
		c.LLM.Model = defaultModel
	}

	c.Server.Debug = c.Debug
	c.Server.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Segmenter.ApplyDefaults()
	c.Transcription.ApplyDefaults()
	c.Diarization.ApplyDefaults()
	c.LLM.ApplyDefaults()
	c.Pipeline.ApplyDefaults()
	c.Report.ApplyDefaults()
	c.Handler.ApplyDefaults()
	c.Observability.ApplyDefaults()
	c.Observability.Environment = c.Environment
}

// Validate checks every section and then the struct tags.
func (c *AppConfig) Validate() error {
	if _, err := alignment.ParsePolicy(string(c.Alignment.Policy)); err != nil {
		return err
	}
	errs := []error{
		c.ServiceConfig.Validate(),
		c.Server.Validate(),
		c.Storage.Validate(),
		c.Segmenter.Validate(),
		c.Transcription.Validate(),
		c.Diarization.Validate(),
		c.LLM.Validate(),
		c.Pipeline.Validate(),
		c.Observability.Validate(),
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	return validation.Validate(c)
}
