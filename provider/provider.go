package provider

import "context"

// Provider is an external engine the pipeline depends on.
type Provider interface {
	Name() string
	// IsAvailable is a cheap reachability check used by health probes.
	IsAvailable(ctx context.Context) bool
}

// RequestResponse is an engine answering one request with one response.
// Transcription, diarization and completion all take this shape so they
// share the same middleware.
type RequestResponse[I, O any] interface {
	Provider
	Execute(ctx context.Context, input I) (O, error)
}

// Factory builds a backend from its flattened config section.
type Factory[T Provider] func(cfg map[string]any) (T, error)
