// Package errors provides the application error type used across meetnotes.
//
// Errors fall into three families that drive how they propagate:
//   - input errors (bad or missing audio, empty transcription) are returned
//     to the client before any processing starts;
//   - engine errors (transcription, diarization, text generation) are caught
//     at the adapter boundary and degraded to sentinel results;
//   - storage errors are logged and surfaced as a missing download link.
//
// Every client-visible error carries a machine-readable code, an HTTP status
// and a short message safe to show to users.
package errors
