// Package pipeline runs a recording through segmentation, per-chunk
// transcription and diarization, speaker alignment, summarization and
// report persistence.
//
// The service Context is built once at start-up and never mutated.
// Chunks are processed in order; the two engine calls for one chunk may
// run side by side but both finish before the next chunk is submitted.
// Once submitted, engine calls are not cancelled.
package pipeline
