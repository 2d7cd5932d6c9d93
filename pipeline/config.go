package pipeline

import (
	"fmt"
	"time"
)

const (
	defaultWorkDir       = "./work"
	defaultMaxConcurrent = 1
	defaultQueueTimeout  = 5 * time.Minute
)

// Config controls pipeline execution.
type Config struct {
	// WorkDir holds per-recording chunk directories.
	WorkDir string `yaml:"work_dir" mapstructure:"work_dir"`
	// ParallelEngines runs transcription and diarization of one chunk
	// concurrently. Defaults to true.
	ParallelEngines *bool `yaml:"parallel_engines" mapstructure:"parallel_engines"`
	// MaxConcurrent is how many recordings may be in the pipeline at once.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent" validate:"gte=0"`
	// QueueTimeout bounds the wait for a free slot.
	QueueTimeout time.Duration `yaml:"queue_timeout" mapstructure:"queue_timeout"`
	// KeepChunks leaves chunk files on disk for inspection.
	KeepChunks bool `yaml:"keep_chunks" mapstructure:"keep_chunks"`
}

// ApplyDefaults fills zero fields.
func (c *Config) ApplyDefaults() {
	if c.WorkDir == "" {
		c.WorkDir = defaultWorkDir
	}
	if c.ParallelEngines == nil {
		parallel := true
		c.ParallelEngines = &parallel
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = defaultMaxConcurrent
	}
	if c.QueueTimeout == 0 {
		c.QueueTimeout = defaultQueueTimeout
	}
}

// Validate checks the config.
func (c *Config) Validate() error {
	if c.MaxConcurrent < 0 {
		return fmt.Errorf("pipeline: max_concurrent must not be negative")
	}
	if c.QueueTimeout < 0 {
		return fmt.Errorf("pipeline: queue_timeout must not be negative")
	}
	return nil
}
