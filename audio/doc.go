// Package audio holds mono PCM buffers and the small amount of signal
// processing the segmenter needs: decoding WAV and MP3, loudness
// measurement in dBFS, peak normalization, a high-pass filter and 16-bit
// WAV export.
//
// Samples are float64 in [-1, 1]. Multichannel input is downmixed on decode.
package audio
