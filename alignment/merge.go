package alignment

import (
	"fmt"
	"strings"

	"github.com/kbukum/meetnotes/diarization"
	"github.com/kbukum/meetnotes/transcription"
)

// Policy decides the speaker of a segment no turn overlaps.
type Policy string

const (
	// PolicyContinuity keeps the most recent speaker, or "Speaker 1" when
	// nobody has spoken yet.
	PolicyContinuity Policy = "continuity"
	// PolicyUnknown labels the segment "Unknown".
	PolicyUnknown Policy = "unknown"

	// UnknownLabel is used by PolicyUnknown.
	UnknownLabel = "Unknown"
)

// ParsePolicy validates a configured policy name. Empty means continuity.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", PolicyContinuity:
		return PolicyContinuity, nil
	case PolicyUnknown:
		return p, nil
	default:
		return "", fmt.Errorf("alignment: unknown unassigned policy %q", s)
	}
}

// Options configures Merge.
type Options struct {
	Policy Policy `yaml:"unassigned_policy" mapstructure:"unassigned_policy" validate:"omitempty,oneof=continuity unknown"`
}

// Utterance is one run of speech by a single speaker.
type Utterance struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Overlap returns the length of the intersection of [aStart, aEnd] and
// [bStart, bEnd], or 0 when they are disjoint.
func Overlap(aStart, aEnd, bStart, bEnd float64) float64 {
	return max(0, min(aEnd, bEnd)-max(aStart, bStart))
}

// BestTurn returns the index of the turn overlapping seg the most, or -1
// if none overlaps. Ties go to the earliest turn.
func BestTurn(seg transcription.Segment, turns []diarization.Turn) int {
	best, bestOverlap := -1, 0.0
	for i, t := range turns {
		if o := Overlap(seg.Start, seg.End, t.Start, t.End); o > bestOverlap {
			best, bestOverlap = i, o
		}
	}
	return best
}

// Merge attributes every segment to a speaker and groups consecutive
// segments of the same speaker. Segments are taken in the given order;
// segments whose text is blank are skipped.
func Merge(segments []transcription.Segment, turns []diarization.Turn, opts Options) []Utterance {
	labels := NewLabelMap()
	var (
		out     []Utterance
		current *Utterance
		last    string
	)

	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}

		var label string
		if i := BestTurn(seg, turns); i >= 0 {
			label = labels.Label(turns[i].SpeakerID)
		} else {
			label = unassigned(opts.Policy, labels, last)
		}
		if label != UnknownLabel {
			last = label
		}

		if current != nil && current.Speaker == label {
			current.Text += " " + text
			continue
		}
		if current != nil {
			out = append(out, *current)
		}
		current = &Utterance{Speaker: label, Text: text}
	}

	if current != nil {
		out = append(out, *current)
	}
	return out
}

func unassigned(p Policy, labels *LabelMap, last string) string {
	if p == PolicyUnknown {
		return UnknownLabel
	}
	if last != "" {
		return last
	}
	return labels.Fallback()
}

// Render formats utterances as "Speaker: text" lines.
func Render(utterances []Utterance) string {
	lines := make([]string, len(utterances))
	for i, u := range utterances {
		lines[i] = u.Speaker + ": " + u.Text
	}
	return strings.Join(lines, "\n")
}

// FullText joins the utterance texts without speaker labels.
func FullText(utterances []Utterance) string {
	parts := make([]string, len(utterances))
	for i, u := range utterances {
		parts[i] = u.Text
	}
	return strings.Join(parts, " ")
}
