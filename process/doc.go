// Package process runs external tools such as ffmpeg as subprocesses with
// graceful termination on context cancellation.
package process
