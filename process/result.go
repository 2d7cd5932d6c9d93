package process

import (
	"strings"
	"time"
)

const stderrTailLines = 5

// Result is a finished subprocess. ExitCode is -1 when it was killed.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// StderrTail joins the last non-empty stderr lines. ffmpeg puts the real
// reason for a failure at the end.
func (r *Result) StderrTail() string {
	if r == nil {
		return ""
	}
	lines := strings.FieldsFunc(string(r.Stderr), func(c rune) bool { return c == '\n' || c == '\r' })
	kept := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			kept = append(kept, l)
		}
	}
	if len(kept) > stderrTailLines {
		kept = kept[len(kept)-stderrTailLines:]
	}
	return strings.Join(kept, "; ")
}
