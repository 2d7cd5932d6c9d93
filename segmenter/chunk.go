package segmenter

import (
	"errors"
	"os"

	"github.com/shopspring/decimal"
)

// Chunk is one exported unit of speech.
type Chunk struct {
	// Index is zero-based; the file is named chunk{Index+1}.wav.
	Index int
	Path  string
	// StartOffset is where the chunk file's time zero falls on the
	// recording's timeline, in seconds. It is negative when the leading
	// padding reaches before the start of the recording.
	StartOffset float64
	// Duration of the exported file in seconds, padding included.
	Duration float64
}

// Global maps a chunk-local timestamp onto the recording's timeline,
// rounded to milliseconds and clamped at zero.
func (c Chunk) Global(local float64) float64 {
	g := decimal.NewFromFloat(local).
		Add(decimal.NewFromFloat(c.StartOffset)).
		Round(3)
	if g.IsNegative() {
		return 0
	}
	f, _ := g.Float64()
	return f
}

// Cleanup removes the exported chunk files. Files already gone are ignored.
func Cleanup(chunks []Chunk) error {
	var errs []error
	for _, c := range chunks {
		if c.Path == "" {
			continue
		}
		if err := os.Remove(c.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
