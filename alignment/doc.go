// Package alignment attributes transcript segments to speakers.
//
// Each segment goes to the diarization turn it overlaps most, raw engine
// speaker ids become "Speaker N" labels in first-seen order, and runs of
// consecutive segments with the same label are grouped into utterances.
// Everything here is pure and deterministic.
package alignment
