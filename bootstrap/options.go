package bootstrap

import (
	"time"

	"github.com/kbukum/meetnotes/logger"
)

// Option adjusts NewApp.
type Option func(*settings)

type settings struct {
	log      *logger.Logger
	graceful time.Duration
}

func collect(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger skips logger.Init and uses l instead.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithGracefulTimeout bounds shutdown, which waits for in-flight uploads.
// Non-positive values keep the default.
func WithGracefulTimeout(d time.Duration) Option {
	return func(s *settings) { s.graceful = d }
}
