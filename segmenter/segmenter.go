package segmenter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kbukum/meetnotes/audio"
	"github.com/kbukum/meetnotes/logger"
	"github.com/kbukum/meetnotes/process"
)

// ErrNoSpeech is returned when the input contains nothing but silence.
var ErrNoSpeech = errors.New("segmenter: no non-silent audio")

// Segmenter splits recordings into chunk files.
type Segmenter struct {
	log *logger.Logger
}

// New creates a Segmenter.
func New(log *logger.Logger) *Segmenter {
	if log == nil {
		log = logger.Nop()
	}
	return &Segmenter{log: log.WithComponent("segmenter")}
}

// Split segments the recording at path into opts.OutputDir. On failure any
// files already written are removed and no chunks are returned.
func Split(ctx context.Context, path string, opts Options) ([]Chunk, error) {
	return New(logger.GetGlobalLogger()).Split(ctx, path, opts)
}

// Split segments the recording at path into opts.OutputDir. On failure any
// files already written are removed and no chunks are returned.
func (s *Segmenter) Split(ctx context.Context, path string, opts Options) ([]Chunk, error) {
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("segmenter: output directory is required")
	}
	if err := os.MkdirAll(opts.OutputDir, 0o750); err != nil {
		return nil, fmt.Errorf("segmenter: create output dir: %w", err)
	}

	start := time.Now()
	buf, err := s.load(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, ErrNoSpeech
	}

	buf = audio.Normalize(buf, opts.Headroom)
	if opts.HighPassHz > 0 {
		buf = audio.HighPass(buf, opts.HighPassHz)
	}

	ranges := speechRanges(buf, opts)
	if len(ranges) == 0 {
		return nil, ErrNoSpeech
	}

	chunks, err := s.export(ctx, buf, ranges, opts)
	if err != nil {
		_ = Cleanup(chunks)
		return nil, err
	}

	s.log.Info("audio segmented", logger.Fields(
		logger.FieldChunkCount, len(chunks),
		"audio_ms", buf.DurationMs(),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return chunks, nil
}

func (s *Segmenter) export(ctx context.Context, buf *audio.Buffer, ranges []Range, opts Options) ([]Chunk, error) {
	padMs := ms(opts.Padding)
	pad := audio.Silence(padMs, buf.SampleRate)

	chunks := make([]Chunk, 0, len(ranges))
	for i, r := range ranges {
		if err := ctx.Err(); err != nil {
			return chunks, err
		}
		out := audio.Concat(pad, buf.Slice(r.Start, r.End), pad)
		path := filepath.Join(opts.OutputDir, "chunk"+strconv.Itoa(i+1)+".wav")
		if err := audio.WriteWAVFile(path, out); err != nil {
			return chunks, fmt.Errorf("segmenter: export chunk %d: %w", i+1, err)
		}
		chunks = append(chunks, Chunk{
			Index:       i,
			Path:        path,
			StartOffset: float64(r.Start-padMs) / 1000,
			Duration:    out.Duration().Seconds(),
		})
		s.log.Debug("chunk exported", logger.Fields(
			logger.FieldChunkIndex, i,
			"start_ms", r.Start,
			"end_ms", r.End,
		))
	}
	return chunks, nil
}

// load decodes path to mono PCM, transcoding through ffmpeg when it is
// available so that any container ffmpeg understands is accepted.
func (s *Segmenter) load(ctx context.Context, path string, opts Options) (*audio.Buffer, error) {
	if opts.FFmpeg == FFmpegDisabled || !process.Available(opts.FFmpeg) {
		buf, err := audio.DecodeFile(path)
		if err != nil {
			return nil, fmt.Errorf("segmenter: decode %s: %w", filepath.Base(path), err)
		}
		return buf, nil
	}

	wav := filepath.Join(opts.OutputDir, "source.wav")
	defer os.Remove(wav) //nolint:errcheck // best effort

	_, err := process.Run(ctx, process.Command{
		Binary: opts.FFmpeg,
		Args: []string{
			"-hide_banner", "-loglevel", "error", "-nostdin", "-y",
			"-i", path,
			"-vn", "-ac", "1", "-ar", strconv.Itoa(opts.SampleRate),
			"-c:a", "pcm_s16le", "-f", "wav",
			wav,
		},
		Env: []string{"AV_LOG_FORCE_NOCOLOR=1"},
	})
	if err != nil {
		return nil, fmt.Errorf("segmenter: transcode %s: %w", filepath.Base(path), err)
	}
	buf, err := audio.DecodeFile(wav)
	if err != nil {
		return nil, fmt.Errorf("segmenter: decode transcoded audio: %w", err)
	}
	return buf, nil
}
