package segmenter

import (
	"fmt"
	"time"
)

// Defaults follow the reference splitter: 700 ms of audio at or below
// -40 dBFS separates two chunks.
const (
	DefaultMinSilenceLen = 700 * time.Millisecond
	DefaultSilenceThresh = -40.0
	DefaultPadding       = 500 * time.Millisecond
	DefaultHighPassHz    = 80.0
	DefaultSeekStep      = 10 * time.Millisecond
	DefaultKeepSilence   = 100 * time.Millisecond
	DefaultHeadroom      = 0.1
	DefaultSampleRate    = 16000
	DefaultFFmpeg        = "ffmpeg"

	// FFmpegDisabled turns off transcoding; only WAV and MP3 are accepted.
	FFmpegDisabled = "none"
)

// Options controls silence detection and chunk export. Zero values take
// the defaults above; negative durations and a negative HighPassHz
// disable the corresponding step.
type Options struct {
	MinSilenceLen time.Duration `yaml:"min_silence_len" mapstructure:"min_silence_len"`
	SilenceThresh float64       `yaml:"silence_thresh" mapstructure:"silence_thresh"`
	Padding       time.Duration `yaml:"padding" mapstructure:"padding"`
	HighPassHz    float64       `yaml:"high_pass_hz" mapstructure:"high_pass_hz"`
	SeekStep      time.Duration `yaml:"seek_step" mapstructure:"seek_step"`
	KeepSilence   time.Duration `yaml:"keep_silence" mapstructure:"keep_silence"`

	// Headroom is the gap in dB left below full scale after normalization.
	Headroom float64 `yaml:"headroom" mapstructure:"headroom"`

	// FFmpeg is the transcoder binary. "none" disables it.
	FFmpeg     string `yaml:"ffmpeg" mapstructure:"ffmpeg"`
	SampleRate int    `yaml:"sample_rate" mapstructure:"sample_rate"`

	// OutputDir receives the chunk files. Set per recording.
	OutputDir string `yaml:"-" mapstructure:"-"`
}

// DefaultOptions returns Options with every default applied.
func DefaultOptions() Options {
	o := Options{}
	o.ApplyDefaults()
	return o
}

// ApplyDefaults fills zero fields.
func (o *Options) ApplyDefaults() {
	if o.MinSilenceLen == 0 {
		o.MinSilenceLen = DefaultMinSilenceLen
	}
	if o.SilenceThresh == 0 {
		o.SilenceThresh = DefaultSilenceThresh
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.HighPassHz == 0 {
		o.HighPassHz = DefaultHighPassHz
	}
	if o.SeekStep == 0 {
		o.SeekStep = DefaultSeekStep
	}
	if o.KeepSilence == 0 {
		o.KeepSilence = DefaultKeepSilence
	}
	if o.Headroom == 0 {
		o.Headroom = DefaultHeadroom
	}
	if o.FFmpeg == "" {
		o.FFmpeg = DefaultFFmpeg
	}
	if o.SampleRate == 0 {
		o.SampleRate = DefaultSampleRate
	}
}

// Validate checks option ranges.
func (o *Options) Validate() error {
	if o.MinSilenceLen < time.Millisecond {
		return fmt.Errorf("segmenter: min_silence_len must be at least 1ms")
	}
	if o.SeekStep < time.Millisecond {
		return fmt.Errorf("segmenter: seek_step must be at least 1ms")
	}
	if o.SilenceThresh > 0 {
		return fmt.Errorf("segmenter: silence_thresh must be <= 0 dBFS")
	}
	if o.SampleRate < 8000 {
		return fmt.Errorf("segmenter: sample_rate must be at least 8000")
	}
	return nil
}

func ms(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / time.Millisecond)
}
