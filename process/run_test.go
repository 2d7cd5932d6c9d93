package process_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/meetnotes/process"
)

func TestRunStdout(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "echo",
		Args:   []string{"hello", "world"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", result.ExitCode)
	}
	if out := strings.TrimSpace(string(result.Stdout)); out != "hello world" {
		t.Fatalf("expected 'hello world', got %q", out)
	}
}

func TestRunFailureIncludesStderrTail(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "echo banner >&2; echo 'Invalid data found when processing input' >&2; exit 1"},
	})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if result.ExitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", result.ExitCode)
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Errorf("expected stderr tail in error, got %v", err)
	}
}

func TestStderrTail(t *testing.T) {
	r := &process.Result{Stderr: []byte("1\n2\n\n3\n4\n5\n6\n")}
	if got := r.StderrTail(); got != "2; 3; 4; 5; 6" {
		t.Errorf("StderrTail() = %q", got)
	}
	var nilResult *process.Result
	if nilResult.StderrTail() != "" {
		t.Error("nil result should have empty tail")
	}
}

func TestRunContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	result, err := process.Run(ctx, process.Command{
		Binary:      "sleep",
		Args:        []string{"10"},
		GracePeriod: 500 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected error from context cancellation")
	}
	if result.Duration > 5*time.Second {
		t.Fatalf("process took too long to kill: %v", result.Duration)
	}
}

func TestRunEmptyBinary(t *testing.T) {
	if _, err := process.Run(context.Background(), process.Command{}); err == nil {
		t.Fatal("expected error for empty binary")
	}
}

func TestRunEnv(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "echo $MEETNOTES_TEST_VAR"},
		Env:    []string{"MEETNOTES_TEST_VAR=hello123"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out := strings.TrimSpace(string(result.Stdout)); out != "hello123" {
		t.Fatalf("expected 'hello123', got %q", out)
	}
}

func TestAvailable(t *testing.T) {
	if !process.Available("sh") {
		t.Error("expected sh on PATH")
	}
	if process.Available("") || process.Available("definitely-not-a-real-binary-xyz") {
		t.Error("expected missing binaries to be unavailable")
	}
}
