package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/meetnotes/alignment"
	"github.com/kbukum/meetnotes/diarization"
	apperrors "github.com/kbukum/meetnotes/errors"
	"github.com/kbukum/meetnotes/logger"
	"github.com/kbukum/meetnotes/segmenter"
	"github.com/kbukum/meetnotes/summary"
	"github.com/kbukum/meetnotes/transcription"
)

type fakeSplitter struct {
	chunks []segmenter.Chunk
	err    error
	block  chan struct{}
	opts   segmenter.Options
}

func (f *fakeSplitter) Split(_ context.Context, _ string, opts segmenter.Options) ([]segmenter.Chunk, error) {
	f.opts = opts
	if f.block != nil {
		<-f.block
	}
	return f.chunks, f.err
}

// fakeEngines returns canned chunk-local output and offsets it the way the
// real adapters do.
type fakeEngines struct {
	mu       sync.Mutex
	local    map[int][]transcription.Segment
	turns    map[int][]diarization.Turn
	fail     map[int]bool
	calls    []int
	onCall   func(ctx context.Context, index int)
	inflight atomic.Int32
	overlap  atomic.Bool
}

func (f *fakeEngines) Transcribe(ctx context.Context, chunk segmenter.Chunk) transcription.Result {
	f.enter()
	defer f.inflight.Add(-1)
	f.mu.Lock()
	f.calls = append(f.calls, chunk.Index)
	f.mu.Unlock()
	if f.onCall != nil {
		f.onCall(ctx, chunk.Index)
	}
	if f.fail[chunk.Index] {
		return transcription.Result{Text: "Error: engine down", Failed: true}
	}
	segs := transcription.Offset(f.local[chunk.Index], chunk)
	return transcription.Result{Text: "ok", Segments: segs}
}

func (f *fakeEngines) Diarize(_ context.Context, chunk segmenter.Chunk) []diarization.Turn {
	f.enter()
	defer f.inflight.Add(-1)
	time.Sleep(5 * time.Millisecond)
	return diarization.Offset(f.turns[chunk.Index], chunk)
}

func (f *fakeEngines) enter() {
	if f.inflight.Add(1) > 1 {
		f.overlap.Store(true)
	}
}

type recordingSaver struct {
	content string
	url     *string
}

func (r *recordingSaver) Save(_ context.Context, id, content string) *string {
	r.content = content
	if r.url != nil {
		u := *r.url + id
		return &u
	}
	return nil
}

func strptr(s string) *string { return &s }

func twoChunkEngines() *fakeEngines {
	return &fakeEngines{
		local: map[int][]transcription.Segment{
			0: {{Start: 0.5, End: 2.0, Text: "Good morning."}, {Start: 2.0, End: 3.5, Text: "Morning!"}},
			1: {{Start: 0.5, End: 1.5, Text: "Let's ship it."}},
		},
		turns: map[int][]diarization.Turn{
			0: {{Start: 0.5, End: 2.0, SpeakerID: "A"}, {Start: 2.0, End: 3.5, SpeakerID: "B"}},
			1: {{Start: 0.4, End: 1.6, SpeakerID: "A"}},
		},
	}
}

func twoChunks() []segmenter.Chunk {
	return []segmenter.Chunk{
		{Index: 0, Path: "chunk1.wav", StartOffset: -0.5},
		{Index: 1, Path: "chunk2.wav", StartOffset: 9.5},
	}
}

func newTestContext(t *testing.T, cfg Config, deps Deps) *Context {
	t.Helper()
	if cfg.WorkDir == "" {
		cfg.WorkDir = t.TempDir()
	}
	if deps.Summarizer == nil {
		deps.Summarizer = summary.NewProcessor(nil, summary.Config{}, nil, nil)
	}
	deps.Log = logger.Nop()
	c, err := New(cfg, deps)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestProcess_MergesChunksOnGlobalTimeline(t *testing.T) {
	engines := twoChunkEngines()
	saver := &recordingSaver{url: strptr("/download/")}
	splitter := &fakeSplitter{chunks: twoChunks()}
	c := newTestContext(t, Config{}, Deps{
		Splitter:    splitter,
		Transcriber: engines,
		Diarizer:    engines,
		Reports:     saver,
	})

	res, err := c.Process(context.Background(), Recording{ID: "rec1", Path: "in.wav"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	want := "Speaker 1: Good morning.\nSpeaker 2: Morning!\nSpeaker 1: Let's ship it."
	if res.Transcription != want {
		t.Errorf("transcription =\n%s\nwant\n%s", res.Transcription, want)
	}
	if res.Chunks != 2 || res.FailedChunks != 0 {
		t.Errorf("chunks = %d failed = %d", res.Chunks, res.FailedChunks)
	}
	if res.Summary != summary.Unavailable || len(res.KeyPoints) != 0 {
		t.Errorf("summary = %q points = %v", res.Summary, res.KeyPoints)
	}
	if res.DownloadURL == nil || *res.DownloadURL != "/download/rec1" {
		t.Errorf("download url = %v", res.DownloadURL)
	}
	if !strings.Contains(saver.content, "=== Full Transcription ===\n"+want) {
		t.Errorf("report content = %q", saver.content)
	}
	if !strings.HasPrefix(filepath.Base(splitter.opts.OutputDir), "rec1-") {
		t.Errorf("output dir = %q", splitter.opts.OutputDir)
	}
	if len(engines.calls) != 2 || engines.calls[0] != 0 || engines.calls[1] != 1 {
		t.Errorf("chunks must be submitted in order, got %v", engines.calls)
	}
}

func TestProcess_SequentialEngines(t *testing.T) {
	engines := twoChunkEngines()
	engines.onCall = func(context.Context, int) { time.Sleep(5 * time.Millisecond) }
	sequential := false
	c := newTestContext(t, Config{ParallelEngines: &sequential}, Deps{
		Splitter:    &fakeSplitter{chunks: twoChunks()},
		Transcriber: engines,
		Diarizer:    engines,
	})
	if _, err := c.Process(context.Background(), Recording{ID: "r"}); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if engines.overlap.Load() {
		t.Error("engines overlapped with parallel_engines disabled")
	}
}

func TestProcess_AllChunksFail(t *testing.T) {
	engines := twoChunkEngines()
	engines.fail = map[int]bool{0: true, 1: true}
	c := newTestContext(t, Config{}, Deps{
		Splitter:    &fakeSplitter{chunks: twoChunks()},
		Transcriber: engines,
		Diarizer:    engines,
	})

	res, err := c.Process(context.Background(), Recording{ID: "r"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Transcription != "Error: engine down" {
		t.Errorf("transcription = %q", res.Transcription)
	}
	if res.FailedChunks != 2 || len(res.Utterances) != 0 {
		t.Errorf("failed = %d utterances = %v", res.FailedChunks, res.Utterances)
	}
	if res.Summary != summary.Unavailable || res.KeyPoints == nil || len(res.KeyPoints) != 0 {
		t.Errorf("summary = %q points = %#v", res.Summary, res.KeyPoints)
	}
	if res.DownloadURL != nil {
		t.Errorf("no report store configured, got %q", *res.DownloadURL)
	}
}

func TestProcess_PartialFailureContinues(t *testing.T) {
	engines := twoChunkEngines()
	engines.fail = map[int]bool{0: true}
	c := newTestContext(t, Config{}, Deps{
		Splitter:    &fakeSplitter{chunks: twoChunks()},
		Transcriber: engines,
		Diarizer:    engines,
	})
	res, err := c.Process(context.Background(), Recording{ID: "r"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Transcription != "Speaker 1: Let's ship it." || res.FailedChunks != 1 {
		t.Errorf("transcription = %q failed = %d", res.Transcription, res.FailedChunks)
	}
}

func TestProcess_InputErrors(t *testing.T) {
	tests := []struct {
		name     string
		splitter *fakeSplitter
	}{
		{"decode failure", &fakeSplitter{err: errors.New("segmenter: decode: bad header")}},
		{"no speech", &fakeSplitter{err: segmenter.ErrNoSpeech}},
		{"no chunks", &fakeSplitter{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engines := twoChunkEngines()
			c := newTestContext(t, Config{}, Deps{Splitter: tt.splitter, Transcriber: engines, Diarizer: engines})
			_, err := c.Process(context.Background(), Recording{ID: "r", Filename: "meeting.m4a"})
			if !apperrors.HasCode(err, apperrors.ErrCodeInvalidAudio) {
				t.Errorf("expected INVALID_AUDIO, got %v", err)
			}
			if len(engines.calls) != 0 {
				t.Error("engines must not run after a segmentation failure")
			}
		})
	}
}

func TestProcess_CancellationBetweenChunks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engines := twoChunkEngines()
	var sawCancel atomic.Bool
	engines.onCall = func(callCtx context.Context, index int) {
		cancel()
		if callCtx.Err() != nil {
			sawCancel.Store(true)
		}
	}
	c := newTestContext(t, Config{}, Deps{
		Splitter:    &fakeSplitter{chunks: twoChunks()},
		Transcriber: engines,
		Diarizer:    engines,
	})

	_, err := c.Process(ctx, Recording{ID: "r"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if sawCancel.Load() {
		t.Error("engine call observed cancellation mid-flight")
	}
	if len(engines.calls) != 1 {
		t.Errorf("expected only the first chunk to run, got %v", engines.calls)
	}
}

func TestProcess_Busy(t *testing.T) {
	block := make(chan struct{})
	engines := twoChunkEngines()
	c := newTestContext(t, Config{MaxConcurrent: 1, QueueTimeout: 10 * time.Millisecond}, Deps{
		Splitter:    &fakeSplitter{chunks: twoChunks(), block: block},
		Transcriber: engines,
		Diarizer:    engines,
	})

	done := make(chan error, 1)
	go func() {
		_, err := c.Process(context.Background(), Recording{ID: "first"})
		done <- err
	}()
	deadline := time.Now().Add(time.Second)
	for c.bulkhead.InUse() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	_, err := c.Process(context.Background(), Recording{ID: "second"})
	if !apperrors.HasCode(err, apperrors.ErrCodeBusy) {
		t.Errorf("expected BUSY, got %v", err)
	}
	close(block)
	if err := <-done; err != nil {
		t.Errorf("first recording failed: %v", err)
	}
}

func TestNew_Validation(t *testing.T) {
	engines := twoChunkEngines()
	sum := summary.NewProcessor(nil, summary.Config{}, nil, nil)
	tests := []struct {
		name string
		deps Deps
	}{
		{"no splitter", Deps{Transcriber: engines, Diarizer: engines, Summarizer: sum}},
		{"no transcriber", Deps{Splitter: &fakeSplitter{}, Diarizer: engines, Summarizer: sum}},
		{"no diarizer", Deps{Splitter: &fakeSplitter{}, Transcriber: engines, Summarizer: sum}},
		{"no summarizer", Deps{Splitter: &fakeSplitter{}, Transcriber: engines, Diarizer: engines}},
		{"bad policy", Deps{Splitter: &fakeSplitter{}, Transcriber: engines, Diarizer: engines, Summarizer: sum,
			Alignment: alignment.Options{Policy: "loudest"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(Config{}, tt.deps); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRecordingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meeting.wav")
	if err := os.WriteFile(path, []byte("same bytes"), 0o600); err != nil {
		t.Fatal(err)
	}
	rec, err := NewRecording(path, "meeting.wav")
	if err != nil {
		t.Fatalf("NewRecording: %v", err)
	}
	if !ValidID(rec.ID) || rec.Size != int64(len("same bytes")) {
		t.Errorf("recording = %+v", rec)
	}
	again, _ := ContentID(strings.NewReader("same bytes"))
	if again != rec.ID {
		t.Errorf("content id not stable: %s vs %s", again, rec.ID)
	}
	other, _ := ContentID(strings.NewReader("other bytes"))
	if other == rec.ID {
		t.Error("different content produced the same id")
	}
	for _, bad := range []string{"", "../etc/passwd", strings.Repeat("g", 32), strings.ToUpper(rec.ID)} {
		if ValidID(bad) {
			t.Errorf("ValidID(%q) = true", bad)
		}
	}
}
