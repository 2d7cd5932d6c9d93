package audio

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Normalize returns a copy of b scaled so the peak sits headroomDB below
// full scale. Silent input is returned unchanged.
func Normalize(b *Buffer, headroomDB float64) *Buffer {
	peak := b.Peak()
	if peak == 0 {
		return b
	}
	out := &Buffer{Samples: make([]float64, len(b.Samples)), SampleRate: b.SampleRate}
	copy(out.Samples, b.Samples)
	floats.Scale(DBToAmplitude(-headroomDB)/peak, out.Samples)
	return out
}

// HighPass returns a copy of b run through a first-order IIR high-pass
// filter. cutoffHz <= 0 returns b unchanged.
func HighPass(b *Buffer, cutoffHz float64) *Buffer {
	if cutoffHz <= 0 || b.SampleRate <= 0 || len(b.Samples) == 0 {
		return b
	}
	rc := 1 / (2 * math.Pi * cutoffHz)
	dt := 1 / float64(b.SampleRate)
	alpha := rc / (rc + dt)

	out := &Buffer{Samples: make([]float64, len(b.Samples)), SampleRate: b.SampleRate}
	out.Samples[0] = b.Samples[0]
	for i := 1; i < len(b.Samples); i++ {
		out.Samples[i] = alpha * (out.Samples[i-1] + b.Samples[i] - b.Samples[i-1])
	}
	return out
}
