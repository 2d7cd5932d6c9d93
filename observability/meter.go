package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/meetnotes/logger"
)

// InitMeter initializes and installs the global OTLP meter provider.
func InitMeter(ctx context.Context, cfg Config, serviceName, version string) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(serviceName, version, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the pipeline's metric instruments.
type Metrics struct {
	recordings     metric.Int64Counter
	recordingsBusy metric.Int64UpDownCounter
	chunks         metric.Int64Counter
	engineCalls    metric.Int64Counter
	engineDuration metric.Float64Histogram
	stageDuration  metric.Float64Histogram
}

// NewMetrics creates the pipeline instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	recordings, err := meter.Int64Counter("meetnotes.recordings",
		metric.WithDescription("Recordings processed, by outcome"))
	if err != nil {
		return nil, fmt.Errorf("creating meetnotes.recordings counter: %w", err)
	}
	recordingsBusy, err := meter.Int64UpDownCounter("meetnotes.recordings.active",
		metric.WithDescription("Recordings currently in the pipeline"))
	if err != nil {
		return nil, fmt.Errorf("creating meetnotes.recordings.active counter: %w", err)
	}
	chunks, err := meter.Int64Counter("meetnotes.chunks.processed",
		metric.WithDescription("Audio chunks sent through the engines"))
	if err != nil {
		return nil, fmt.Errorf("creating meetnotes.chunks.processed counter: %w", err)
	}
	engineCalls, err := meter.Int64Counter("meetnotes.engine.calls",
		metric.WithDescription("Engine calls by engine and status"))
	if err != nil {
		return nil, fmt.Errorf("creating meetnotes.engine.calls counter: %w", err)
	}
	engineDuration, err := meter.Float64Histogram("meetnotes.engine.duration",
		metric.WithDescription("Engine call latency"), metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("creating meetnotes.engine.duration histogram: %w", err)
	}
	stageDuration, err := meter.Float64Histogram("meetnotes.stage.duration",
		metric.WithDescription("Pipeline stage latency"), metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("creating meetnotes.stage.duration histogram: %w", err)
	}

	return &Metrics{
		recordings:     recordings,
		recordingsBusy: recordingsBusy,
		chunks:         chunks,
		engineCalls:    engineCalls,
		engineDuration: engineDuration,
		stageDuration:  stageDuration,
	}, nil
}

// RecordingStarted marks a recording entering the pipeline.
func (m *Metrics) RecordingStarted(ctx context.Context) {
	if m == nil {
		return
	}
	m.recordingsBusy.Add(ctx, 1)
}

// RecordingFinished records a recording leaving the pipeline with status.
func (m *Metrics) RecordingFinished(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.recordingsBusy.Add(ctx, -1)
	m.recordings.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStatus, status)))
}

// RecordChunk counts one processed chunk.
func (m *Metrics) RecordChunk(ctx context.Context, failed bool) {
	if m == nil {
		return
	}
	status := "ok"
	if failed {
		status = "failed"
	}
	m.chunks.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStatus, status)))
}

// RecordEngineCall records one engine call.
func (m *Metrics) RecordEngineCall(ctx context.Context, engine, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.engineCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrEngine, engine),
		attribute.String(AttrStatus, status),
	))
	m.engineDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String(AttrEngine, engine)))
}

// RecordStage records how long a pipeline stage took.
func (m *Metrics) RecordStage(ctx context.Context, stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("stage", stage)))
}
