package diarization

import (
	"context"
	"fmt"
	"sort"

	"github.com/kbukum/meetnotes/logger"
	"github.com/kbukum/meetnotes/observability"
	"github.com/kbukum/meetnotes/provider"
	"github.com/kbukum/meetnotes/segmenter"
)

// Adapter runs a Provider per chunk and normalizes its output.
type Adapter struct {
	engine   Provider
	request  Request
	perChunk bool
	log      *logger.Logger
}

// NewAdapter wraps p with logging, tracing, metrics and the resilience
// policy in cfg. metrics may be nil.
func NewAdapter(p Provider, cfg Config, log *logger.Logger, metrics *observability.Metrics) *Adapter {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("diarization")

	engine := provider.WithResilience(p, cfg.Resilience)
	engine = provider.Chain(
		provider.WithLogging[Request, *Diarization](log),
		provider.WithTracing[Request, *Diarization]("diarization"),
		provider.WithMetrics[Request, *Diarization](metrics),
	)(engine)

	return &Adapter{
		engine: engine,
		request: Request{
			NumSpeakers: cfg.NumSpeakers,
			MinSpeakers: cfg.MinSpeakers,
			MaxSpeakers: cfg.MaxSpeakers,
		},
		perChunk: cfg.PerChunkSpeakers,
		log:      log,
	}
}

// Name returns the backend name.
func (a *Adapter) Name() string { return a.engine.Name() }

// IsAvailable reports whether the backend answers its health check.
func (a *Adapter) IsAvailable(ctx context.Context) bool { return a.engine.IsAvailable(ctx) }

// Diarize runs the engine on one chunk and returns its turns on the global
// timeline. Any failure yields no turns.
func (a *Adapter) Diarize(ctx context.Context, chunk segmenter.Chunk) []Turn {
	req := a.request
	req.AudioPath = chunk.Path

	d, err := a.engine.Execute(ctx, req)
	if err != nil || d == nil {
		fields := logger.Fields(logger.FieldChunkIndex, chunk.Index)
		if err != nil {
			fields[logger.FieldError] = err.Error()
		}
		a.log.WithContext(ctx).Warn("chunk diarization failed", fields)
		return nil
	}

	turns := Offset(d.Turns, chunk)
	if a.perChunk {
		for i := range turns {
			turns[i].SpeakerID = fmt.Sprintf("c%d:%s", chunk.Index, turns[i].SpeakerID)
		}
	}
	return turns
}

// Offset maps chunk-local turns onto the global timeline, ordered by start.
func Offset(local []Turn, chunk segmenter.Chunk) []Turn {
	out := make([]Turn, len(local))
	for i, t := range local {
		out[i] = Turn{
			Start:     chunk.Global(t.Start),
			End:       chunk.Global(t.End),
			SpeakerID: t.SpeakerID,
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
