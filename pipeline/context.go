package pipeline

import (
	"context"
	"errors"

	"github.com/kbukum/meetnotes/alignment"
	"github.com/kbukum/meetnotes/diarization"
	"github.com/kbukum/meetnotes/logger"
	"github.com/kbukum/meetnotes/observability"
	"github.com/kbukum/meetnotes/resilience"
	"github.com/kbukum/meetnotes/segmenter"
	"github.com/kbukum/meetnotes/transcription"
)

// Splitter cuts a recording into chunk files.
type Splitter interface {
	Split(ctx context.Context, path string, opts segmenter.Options) ([]segmenter.Chunk, error)
}

// Transcriber transcribes one chunk. It reports failure in the result.
type Transcriber interface {
	Transcribe(ctx context.Context, chunk segmenter.Chunk) transcription.Result
}

// Diarizer diarizes one chunk. Failure yields no turns.
type Diarizer interface {
	Diarize(ctx context.Context, chunk segmenter.Chunk) []diarization.Turn
}

// Summarizer derives the summary and key points of a labeled transcript.
type Summarizer interface {
	Summarize(ctx context.Context, merged string) (string, []string)
}

// ReportSaver persists a rendered report and returns its download URL,
// or nil when it was not stored.
type ReportSaver interface {
	Save(ctx context.Context, recordingID, content string) *string
}

// Deps are the collaborators a Context is built from.
type Deps struct {
	Splitter    Splitter
	Segments    segmenter.Options
	Transcriber Transcriber
	Diarizer    Diarizer
	Alignment   alignment.Options
	Summarizer  Summarizer
	Reports     ReportSaver
	Log         *logger.Logger
	Metrics     *observability.Metrics
}

// Context is the immutable service context shared by all requests.
type Context struct {
	cfg         Config
	splitter    Splitter
	segments    segmenter.Options
	transcriber Transcriber
	diarizer    Diarizer
	alignment   alignment.Options
	summarizer  Summarizer
	reports     ReportSaver
	bulkhead    *resilience.Bulkhead
	log         *logger.Logger
	metrics     *observability.Metrics
}

// New validates cfg and deps and builds the service context.
func New(cfg Config, deps Deps) (*Context, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case deps.Splitter == nil:
		return nil, errors.New("pipeline: splitter is required")
	case deps.Transcriber == nil:
		return nil, errors.New("pipeline: transcriber is required")
	case deps.Diarizer == nil:
		return nil, errors.New("pipeline: diarizer is required")
	case deps.Summarizer == nil:
		return nil, errors.New("pipeline: summarizer is required")
	}
	if _, err := alignment.ParsePolicy(string(deps.Alignment.Policy)); err != nil {
		return nil, err
	}

	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("pipeline")

	reports := deps.Reports
	if reports == nil {
		reports = noReports{}
	}

	return &Context{
		cfg:         cfg,
		splitter:    deps.Splitter,
		segments:    deps.Segments,
		transcriber: deps.Transcriber,
		diarizer:    deps.Diarizer,
		alignment:   deps.Alignment,
		summarizer:  deps.Summarizer,
		reports:     reports,
		bulkhead: resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          "pipeline",
			MaxConcurrent: cfg.MaxConcurrent,
			MaxWait:       cfg.QueueTimeout,
			OnReject: func(name string) {
				log.Warn("recording rejected, pipeline busy", logger.Fields("bulkhead", name))
			},
		}),
		log:     log,
		metrics: deps.Metrics,
	}, nil
}

type noReports struct{}

func (noReports) Save(context.Context, string, string) *string { return nil }
