package audio

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Buffer is mono PCM audio.
type Buffer struct {
	Samples    []float64
	SampleRate int
}

// Len returns the number of samples.
func (b *Buffer) Len() int { return len(b.Samples) }

// Duration returns the playback length.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(b.Samples)) * time.Second / time.Duration(b.SampleRate)
}

// DurationMs returns the playback length in whole milliseconds.
func (b *Buffer) DurationMs() int {
	return int(b.Duration() / time.Millisecond)
}

// SampleAt converts a millisecond position into a sample index clamped to
// the buffer.
func (b *Buffer) SampleAt(ms int) int {
	i := int(int64(ms) * int64(b.SampleRate) / 1000)
	return max(0, min(i, len(b.Samples)))
}

// Slice returns the audio between startMs and endMs. The result shares
// memory with b.
func (b *Buffer) Slice(startMs, endMs int) *Buffer {
	lo, hi := b.SampleAt(startMs), b.SampleAt(endMs)
	if hi < lo {
		hi = lo
	}
	return &Buffer{Samples: b.Samples[lo:hi], SampleRate: b.SampleRate}
}

// RMS returns the root mean square amplitude.
func (b *Buffer) RMS() float64 {
	if len(b.Samples) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(b.Samples, b.Samples) / float64(len(b.Samples)))
}

// DBFS returns the RMS loudness relative to full scale. Digital silence
// is -Inf.
func (b *Buffer) DBFS() float64 {
	return AmplitudeToDB(b.RMS())
}

// Peak returns the largest absolute sample value.
func (b *Buffer) Peak() float64 {
	if len(b.Samples) == 0 {
		return 0
	}
	return math.Max(floats.Max(b.Samples), -floats.Min(b.Samples))
}

// Silence returns ms milliseconds of digital silence at sampleRate.
func Silence(ms, sampleRate int) *Buffer {
	n := int(int64(ms) * int64(sampleRate) / 1000)
	return &Buffer{Samples: make([]float64, max(n, 0)), SampleRate: sampleRate}
}

// Concat joins buffers of the same sample rate into a new buffer.
func Concat(parts ...*Buffer) *Buffer {
	out := &Buffer{}
	total := 0
	for _, p := range parts {
		total += len(p.Samples)
		if out.SampleRate == 0 {
			out.SampleRate = p.SampleRate
		}
	}
	out.Samples = make([]float64, 0, total)
	for _, p := range parts {
		out.Samples = append(out.Samples, p.Samples...)
	}
	return out
}

// AmplitudeToDB converts a linear amplitude to decibels relative to full scale.
func AmplitudeToDB(a float64) float64 {
	if a <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(a)
}

// DBToAmplitude converts decibels relative to full scale to a linear amplitude.
func DBToAmplitude(db float64) float64 {
	return math.Pow(10, db/20)
}
