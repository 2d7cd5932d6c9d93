// Package segmenter splits a recording into silence-delimited chunks.
//
// Input is normalized to 16 kHz mono (by ffmpeg when it is installed,
// in-process for WAV and MP3 otherwise), loudness-normalized and high-pass
// filtered. Non-silent ranges are padded with silence on both ends and
// exported as chunk{N}.wav files. Each Chunk carries the offset that maps
// chunk-local engine timestamps back onto the recording's timeline.
package segmenter
