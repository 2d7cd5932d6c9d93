// Package observability wires OpenTelemetry tracing and metrics for the
// meeting pipeline.
//
// Tracing and metric export are both optional; when disabled the global
// no-op providers make every span and instrument free.
//
//	shutdown, err := observability.Init(ctx, cfg, "meetnotes", version)
//	defer shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanSegment)
//	defer span.End()
package observability
