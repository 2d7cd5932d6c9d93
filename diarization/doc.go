// Package diarization answers "who spoke when" for each audio chunk.
//
// Backends implement Provider and register a factory under a name:
//
//   - diarization/pyannote: pyannote HTTP sidecar (POST /diarize)
//
// The Adapter maps chunk-local turns onto the recording's timeline and
// swallows engine failures: a chunk that cannot be diarized has no turns.
package diarization
