package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/kbukum/meetnotes/audio"
	"github.com/kbukum/meetnotes/component"
)

type fakeComponent struct {
	started, stopped bool
	startErr         error
}

func (f *fakeComponent) Name() string                    { return "fake" }
func (f *fakeComponent) Start(ctx context.Context) error { f.started = true; return f.startErr }
func (f *fakeComponent) Stop(ctx context.Context) error  { f.stopped = true; return nil }
func (f *fakeComponent) Health(ctx context.Context) component.Health {
	return component.Health{Name: "fake", Status: component.StatusHealthy}
}

func TestSetupStopsOnCleanup(t *testing.T) {
	c := &fakeComponent{}
	t.Run("inner", func(t *testing.T) {
		T(t).Setup(c)
		if !c.started {
			t.Fatal("expected component started")
		}
	})
	if !c.stopped {
		t.Fatal("expected component stopped after subtest cleanup")
	}
}

func TestWriteWAVRoundTrip(t *testing.T) {
	path := WriteWAV(t, "fixture.wav", Tone(500), audio.Silence(500, SampleRate))
	buf, err := audio.DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if got := buf.DurationMs(); got < 990 || got > 1010 {
		t.Errorf("duration = %dms, want ~1000ms", got)
	}
	if buf.SampleRate != SampleRate {
		t.Errorf("sample rate = %d", buf.SampleRate)
	}
}

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, "chunk1.wav", []byte("RIFF"))
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "RIFF" {
		t.Fatalf("read back %q, %v", data, err)
	}
}
