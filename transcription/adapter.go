package transcription

import (
	"context"
	"sort"
	"strings"

	apperrors "github.com/kbukum/meetnotes/errors"
	"github.com/kbukum/meetnotes/logger"
	"github.com/kbukum/meetnotes/observability"
	"github.com/kbukum/meetnotes/provider"
	"github.com/kbukum/meetnotes/segmenter"
)

// ErrorPrefix starts the marker text of a failed chunk.
const ErrorPrefix = "Error: "

// Adapter runs a Provider per chunk and normalizes its output.
type Adapter struct {
	engine   Provider
	language string
	task     string
	log      *logger.Logger
}

// NewAdapter wraps p with logging, tracing, metrics and the resilience
// policy in cfg. metrics may be nil.
func NewAdapter(p Provider, cfg Config, log *logger.Logger, metrics *observability.Metrics) *Adapter {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("transcription")

	engine := provider.WithResilience(p, cfg.Resilience)
	engine = provider.Chain(
		provider.WithLogging[Request, *Transcript](log),
		provider.WithTracing[Request, *Transcript]("transcription"),
		provider.WithMetrics[Request, *Transcript](metrics),
	)(engine)

	return &Adapter{engine: engine, language: cfg.Language, task: cfg.Task, log: log}
}

// Name returns the backend name.
func (a *Adapter) Name() string { return a.engine.Name() }

// IsAvailable reports whether the backend answers its health check.
func (a *Adapter) IsAvailable(ctx context.Context) bool { return a.engine.IsAvailable(ctx) }

// Transcribe runs the engine on one chunk. It never fails: on error the
// result carries an "Error: ..." marker, no segments and Failed set.
func (a *Adapter) Transcribe(ctx context.Context, chunk segmenter.Chunk) Result {
	t, err := a.engine.Execute(ctx, Request{
		AudioPath: chunk.Path,
		Language:  a.language,
		Task:      a.task,
	})
	if err == nil && t == nil {
		err = apperrors.ExternalServiceError(a.Name(), nil)
	}
	if err != nil {
		a.log.WithContext(ctx).Warn("chunk transcription failed", logger.Fields(
			logger.FieldChunkIndex, chunk.Index,
			logger.FieldError, err.Error(),
		))
		return Result{Text: ErrorPrefix + reason(err), Failed: true}
	}

	segments := Offset(t.Segments, chunk)
	text := strings.TrimSpace(t.Text)
	if text == "" {
		text = joinText(segments)
	}
	return Result{Text: text, Segments: segments}
}

// Offset maps chunk-local segments onto the global timeline. Segments with
// no text are dropped and the rest are ordered by start time.
func Offset(local []Segment, chunk segmenter.Chunk) []Segment {
	out := make([]Segment, 0, len(local))
	for _, s := range local {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		out = append(out, Segment{
			Start: chunk.Global(s.Start),
			End:   chunk.Global(s.End),
			Text:  text,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// IsErrorMarker reports whether text is a failed chunk's marker.
func IsErrorMarker(text string) bool {
	return strings.HasPrefix(text, ErrorPrefix)
}

func joinText(segments []Segment) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}

// failedReason stands in for errors that carry no client-safe message.
const failedReason = "transcription failed"

// reason is the short, client-safe description used in the marker. Only
// AppError messages are shown; anything else may hold paths or addresses.
func reason(err error) string {
	if ae, ok := apperrors.AsAppError(err); ok && ae.Message != "" {
		return ae.Message
	}
	return failedReason
}
