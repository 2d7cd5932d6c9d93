// Package transcription turns audio chunks into time-aligned transcript
// segments on the recording's global timeline.
//
// Backends implement Provider and register a factory under a name:
//
//   - transcription/whisper: Whisper HTTP sidecar (POST /transcribe)
//
// The Adapter wraps a provider with logging, tracing, metrics and
// resilience, shifts chunk-local timestamps by the chunk offset, and never
// returns an error: a failed call yields an "Error: ..." marker instead.
package transcription
