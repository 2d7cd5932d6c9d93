package process

import (
	"os/exec"
	"time"
)

// Command is one external tool invocation, ffmpeg in practice.
type Command struct {
	// Binary is a path or a name looked up on PATH.
	Binary string
	Args   []string
	// Env is appended to the inherited environment.
	Env []string
	// GracePeriod separates SIGTERM from SIGKILL on cancellation.
	// Zero means five seconds.
	GracePeriod time.Duration
}

// Available reports whether binary resolves on PATH.
func Available(binary string) bool {
	if binary == "" {
		return false
	}
	_, err := exec.LookPath(binary)
	return err == nil
}
