// Package provider defines the contract shared by the external engines
// (transcription, diarization, text generation) and the generic plumbing
// wrapped around them.
//
// An engine is a [RequestResponse] provider: one request in, one result
// out. Backends are registered by name in a [Registry] and selected from
// configuration. Cross-cutting behavior is layered on with middleware:
//
//	p = provider.Chain(
//	    provider.WithLogging[Req, Resp](log),
//	    provider.WithTracing[Req, Resp]("transcription"),
//	    provider.WithMetrics[Req, Resp](metrics),
//	)(provider.WithResilience(p, cfg.Resilience))
package provider
