package testutil

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/kbukum/meetnotes/audio"
)

// SampleRate is the rate of synthesized fixtures.
const SampleRate = 16000

// Tone returns ms milliseconds of a 440 Hz sine at half scale, loud enough
// to never count as silence.
func Tone(ms int) *audio.Buffer {
	b := &audio.Buffer{Samples: make([]float64, ms*SampleRate/1000), SampleRate: SampleRate}
	for i := range b.Samples {
		b.Samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/SampleRate)
	}
	return b
}

// WriteWAV concatenates parts and writes them as a 16-bit WAV file named
// name inside a per-test temp dir.
func WriteWAV(t testing.TB, name string, parts ...*audio.Buffer) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := audio.WriteWAVFile(path, audio.Concat(parts...)); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
