package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/meetnotes/alignment"
	"github.com/kbukum/meetnotes/diarization"
	apperrors "github.com/kbukum/meetnotes/errors"
	"github.com/kbukum/meetnotes/logger"
	"github.com/kbukum/meetnotes/observability"
	"github.com/kbukum/meetnotes/report"
	"github.com/kbukum/meetnotes/resilience"
	"github.com/kbukum/meetnotes/segmenter"
	"github.com/kbukum/meetnotes/transcription"
)

// Process runs rec through the whole pipeline. Only input problems and a
// busy pipeline are returned as errors; engine and storage failures
// degrade the result instead.
func (c *Context) Process(ctx context.Context, rec Recording) (*Result, error) {
	ctx = logger.WithRecordingID(ctx, rec.ID)
	res, err := resilience.ExecuteWithResult(c.bulkhead, ctx, func() (*Result, error) {
		return c.process(ctx, rec)
	})
	if errors.Is(err, resilience.ErrBulkheadFull) || errors.Is(err, resilience.ErrBulkheadTimeout) {
		return nil, apperrors.Busy().WithCause(err)
	}
	return res, err
}

func (c *Context) process(ctx context.Context, rec Recording) (res *Result, err error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanPipeline,
		attribute.String(observability.AttrRecordingID, rec.ID))
	defer span.End()

	log := c.log.WithContext(ctx)
	start := time.Now()
	c.metrics.RecordingStarted(ctx)
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
			observability.SetSpanError(ctx, err)
		}
		c.metrics.RecordingFinished(ctx, status)
	}()

	workDir := filepath.Join(c.cfg.WorkDir, rec.ID+"-"+uuid.NewString())
	if !c.cfg.KeepChunks {
		defer os.RemoveAll(workDir) //nolint:errcheck // best effort
	}

	chunks, err := c.split(ctx, rec, workDir)
	if err != nil {
		return nil, err
	}
	if !c.cfg.KeepChunks {
		defer func() {
			if cerr := segmenter.Cleanup(chunks); cerr != nil {
				log.Warn("chunk cleanup failed", logger.Fields(logger.FieldError, cerr.Error()))
			}
		}()
	}
	span.SetAttributes(attribute.Int(observability.AttrChunkCount, len(chunks)))

	outcomes, err := c.runChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}
	var (
		segments []transcription.Segment
		turns    []diarization.Turn
		failed   int
		marker   string
	)
	for _, o := range outcomes {
		if o.transcript.Failed {
			failed++
			if marker == "" {
				marker = o.transcript.Text
			}
		}
		segments = append(segments, o.transcript.Segments...)
		turns = append(turns, o.turns...)
	}

	stageStart := time.Now()
	_, mergeSpan := observability.StartSpan(ctx, observability.SpanMerge)
	utterances := alignment.Merge(segments, turns, c.alignment)
	labeled := alignment.Render(utterances)
	mergeSpan.End()
	c.metrics.RecordStage(ctx, "merge", time.Since(stageStart))

	transcript := labeled
	if len(utterances) == 0 && marker != "" {
		transcript = marker
	}

	stageStart = time.Now()
	sumCtx, sumSpan := observability.StartSpan(ctx, observability.SpanSummarize)
	summary, points := c.summarizer.Summarize(sumCtx, labeled)
	sumSpan.End()
	c.metrics.RecordStage(ctx, "summarize", time.Since(stageStart))

	repCtx, repSpan := observability.StartSpan(ctx, observability.SpanReport)
	url := c.reports.Save(repCtx, rec.ID, report.Render(summary, points, transcript))
	repSpan.End()

	log.Info("recording processed", logger.Fields(
		logger.FieldChunkCount, len(chunks),
		"failed_chunks", failed,
		"utterances", len(utterances),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))

	return &Result{
		RecordingID:   rec.ID,
		Transcription: transcript,
		Utterances:    utterances,
		Summary:       summary,
		KeyPoints:     points,
		DownloadURL:   url,
		Chunks:        len(chunks),
		FailedChunks:  failed,
	}, nil
}

func (c *Context) split(ctx context.Context, rec Recording, workDir string) ([]segmenter.Chunk, error) {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, observability.SpanSegment)
	defer span.End()

	opts := c.segments
	opts.OutputDir = workDir
	chunks, err := c.splitter.Split(ctx, rec.Path, opts)
	c.metrics.RecordStage(ctx, "segment", time.Since(start))

	switch {
	case err != nil && ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(err, segmenter.ErrNoSpeech) || (err == nil && len(chunks) == 0):
		return nil, apperrors.InvalidAudio("no speech was detected in the recording").WithCause(err)
	case err != nil:
		observability.SetSpanError(ctx, err)
		c.log.WithContext(ctx).Warn("segmentation failed", logger.Fields(logger.FieldError, err.Error()))
		return nil, apperrors.InvalidAudio(fmt.Sprintf("could not decode %s", displayName(rec))).WithCause(err)
	}
	return chunks, nil
}

// chunkOutcome holds what the engines produced for one chunk. Each engine
// fills its own half.
type chunkOutcome struct {
	transcript transcription.Result
	turns      []diarization.Turn
}

// runChunks streams chunks through both engines one chunk at a time. Both
// engines finish a chunk before the next one is pulled, and the engines
// see a context that is never cancelled.
func (c *Context) runChunks(ctx context.Context, chunks []segmenter.Chunk) ([]chunkOutcome, error) {
	engines := FanOut[segmenter.Chunk, chunkOutcome]
	if !*c.cfg.ParallelEngines {
		engines = Serial[segmenter.Chunk, chunkOutcome]
	}
	stream := engines(FromSlice(chunks), c.transcribe, c.diarize)
	joined := Map(stream, func(_ context.Context, halves []chunkOutcome) (chunkOutcome, error) {
		return chunkOutcome{transcript: halves[0].transcript, turns: halves[1].turns}, nil
	})
	return Collect(ctx, Tap(joined, func(ctx context.Context, o chunkOutcome) error {
		c.metrics.RecordChunk(ctx, o.transcript.Failed)
		return nil
	}))
}

func (c *Context) transcribe(ctx context.Context, chunk segmenter.Chunk) (chunkOutcome, error) {
	ctx, span := c.chunkSpan(ctx, chunk, "transcription")
	defer span.End()
	return chunkOutcome{transcript: c.transcriber.Transcribe(context.WithoutCancel(ctx), chunk)}, nil
}

func (c *Context) diarize(ctx context.Context, chunk segmenter.Chunk) (chunkOutcome, error) {
	ctx, span := c.chunkSpan(ctx, chunk, "diarization")
	defer span.End()
	return chunkOutcome{turns: c.diarizer.Diarize(context.WithoutCancel(ctx), chunk)}, nil
}

func (c *Context) chunkSpan(ctx context.Context, chunk segmenter.Chunk, engine string) (context.Context, trace.Span) {
	return observability.StartSpan(ctx, observability.SpanChunk,
		attribute.Int(observability.AttrChunkIndex, chunk.Index),
		attribute.String(observability.AttrEngine, engine))
}

func displayName(rec Recording) string {
	if rec.Filename != "" {
		return rec.Filename
	}
	return filepath.Base(rec.Path)
}
