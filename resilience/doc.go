// Package resilience guards calls to the external engines.
//
//   - Retry re-runs a failed engine call with exponential backoff, but only
//     for errors that are marked retryable.
//   - CircuitBreaker stops hammering an engine that keeps failing so a dead
//     sidecar costs one fast failure per chunk instead of a full timeout.
//   - Bulkhead caps how many recordings are in the pipeline at once; the
//     engines are single-instance and are not shared between uploads.
package resilience
