package segmenter

import (
	"gonum.org/v1/gonum/floats"

	"github.com/kbukum/meetnotes/audio"
)

// Range is a half-open [Start, End) span in milliseconds.
type Range struct {
	Start int
	End   int
}

// Len returns the span length in milliseconds.
func (r Range) Len() int { return r.End - r.Start }

// energy holds cumulative sums of squared samples at millisecond
// boundaries, so any window's mean power is two lookups.
type energy struct {
	buf    *audio.Buffer
	prefix []float64
}

func newEnergy(buf *audio.Buffer) *energy {
	n := buf.DurationMs()
	prefix := make([]float64, n+1)
	for i := 0; i < n; i++ {
		seg := buf.Samples[buf.SampleAt(i):buf.SampleAt(i+1)]
		prefix[i+1] = prefix[i] + floats.Dot(seg, seg)
	}
	return &energy{buf: buf, prefix: prefix}
}

func (e *energy) meanSquare(start, end int) float64 {
	count := e.buf.SampleAt(end) - e.buf.SampleAt(start)
	if count <= 0 {
		return 0
	}
	return (e.prefix[end] - e.prefix[start]) / float64(count)
}

// DetectSilence returns the silent ranges of buf. A window of minSilenceMs
// is slid in seekStepMs steps; windows whose RMS is at or below threshDB
// are silent and overlapping silent windows coalesce.
func DetectSilence(buf *audio.Buffer, minSilenceMs int, threshDB float64, seekStepMs int) []Range {
	total := buf.DurationMs()
	if total < minSilenceMs || minSilenceMs <= 0 {
		return nil
	}
	if seekStepMs <= 0 {
		seekStepMs = 1
	}

	e := newEnergy(buf)
	limit := audio.DBToAmplitude(threshDB)
	limit *= limit

	last := total - minSilenceMs
	var starts []int
	check := func(i int) {
		if e.meanSquare(i, i+minSilenceMs) <= limit {
			starts = append(starts, i)
		}
	}
	for i := 0; i <= last; i += seekStepMs {
		check(i)
	}
	if last%seekStepMs != 0 {
		check(last)
	}
	if len(starts) == 0 {
		return nil
	}

	var ranges []Range
	prev := starts[0]
	current := prev
	for _, s := range starts[1:] {
		continuous := s == prev+seekStepMs
		gap := s > prev+minSilenceMs
		if !continuous && gap {
			ranges = append(ranges, Range{Start: current, End: prev + minSilenceMs})
			current = s
		}
		prev = s
	}
	return append(ranges, Range{Start: current, End: prev + minSilenceMs})
}

// DetectNonSilent returns the complement of DetectSilence. Input without
// silence is one range; entirely silent input is none.
func DetectNonSilent(buf *audio.Buffer, minSilenceMs int, threshDB float64, seekStepMs int) []Range {
	total := buf.DurationMs()
	silent := DetectSilence(buf, minSilenceMs, threshDB, seekStepMs)
	if len(silent) == 0 {
		if total == 0 {
			return nil
		}
		return []Range{{Start: 0, End: total}}
	}
	if silent[0].Start == 0 && silent[0].End == total {
		return nil
	}

	var out []Range
	prevEnd := 0
	for _, s := range silent {
		out = append(out, Range{Start: prevEnd, End: s.Start})
		prevEnd = s.End
	}
	if prevEnd != total {
		out = append(out, Range{Start: prevEnd, End: total})
	}
	if len(out) > 0 && out[0] == (Range{}) {
		out = out[1:]
	}
	return out
}

// speechRanges widens each non-silent range by keepMs on both sides. Where
// two widened ranges overlap they meet at the midpoint.
func speechRanges(buf *audio.Buffer, o Options) []Range {
	ranges := DetectNonSilent(buf, ms(o.MinSilenceLen), o.SilenceThresh, ms(o.SeekStep))
	keep := ms(o.KeepSilence)
	for i := range ranges {
		ranges[i].Start -= keep
		ranges[i].End += keep
	}
	for i := 0; i+1 < len(ranges); i++ {
		if next := ranges[i+1].Start; next < ranges[i].End {
			mid := (ranges[i].End + next) / 2
			ranges[i].End = mid
			ranges[i+1].Start = mid
		}
	}
	total := buf.DurationMs()
	for i := range ranges {
		ranges[i].Start = max(ranges[i].Start, 0)
		ranges[i].End = min(ranges[i].End, total)
	}
	return ranges
}
