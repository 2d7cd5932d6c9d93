package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMetricsWithGlobalNoopMeter(t *testing.T) {
	m, err := NewMetrics(Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	ctx := context.Background()
	m.RecordingStarted(ctx)
	m.RecordChunk(ctx, false)
	m.RecordChunk(ctx, true)
	m.RecordEngineCall(ctx, "whisper", "ok", time.Second)
	m.RecordStage(ctx, "merge", time.Millisecond)
	m.RecordingFinished(ctx, "ok")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordingStarted(ctx)
	m.RecordChunk(ctx, true)
	m.RecordEngineCall(ctx, "pyannote", "error", time.Second)
	m.RecordStage(ctx, "segment", time.Second)
	m.RecordingFinished(ctx, "error")
}

func TestSpanHelpersWithoutProvider(t *testing.T) {
	ctx, span := StartSpan(context.Background(), SpanChunk)
	defer span.End()
	SetSpanAttribute(ctx, AttrChunkIndex, 3)
	SetSpanError(ctx, errors.New("engine down"))
	SetSpanError(ctx, nil)
}

func TestInitWithEverythingDisabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{}, "meetnotes", "dev")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" || cfg.SampleRate != 1.0 || cfg.Interval != 15*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	cfg.SampleRate = 2
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for sample rate above 1")
	}
}
