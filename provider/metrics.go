package provider

import (
	"context"
	"time"

	"github.com/kbukum/meetnotes/observability"
)

// WithMetrics counts engine calls by outcome and records their latency.
func WithMetrics[I, O any](metrics *observability.Metrics) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &meteredRR[I, O]{RequestResponse: inner, metrics: metrics}
	}
}

type meteredRR[I, O any] struct {
	RequestResponse[I, O]
	metrics *observability.Metrics
}

func (m *meteredRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	out, err := m.RequestResponse.Execute(ctx, input)
	outcome := "ok"
	switch {
	case ctx.Err() != nil:
		outcome = "canceled"
	case err != nil:
		outcome = "error"
	}
	m.metrics.RecordEngineCall(ctx, m.Name(), outcome, time.Since(start))
	return out, err
}
