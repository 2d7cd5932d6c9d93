package component

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/meetnotes/logger"
)

// mockComponent implements Component for testing.
type mockComponent struct {
	name       string
	startErr   error
	stopErr    error
	health     Health
	startOrder *[]string
	stopOrder  *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.startOrder != nil {
		*m.startOrder = append(*m.startOrder, m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.stopOrder != nil {
		*m.stopOrder = append(*m.stopOrder, m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health {
	return m.health
}

type stubProber struct {
	name string
	up   bool
}

func (p stubProber) Name() string                       { return p.name }
func (p stubProber) IsAvailable(_ context.Context) bool { return p.up }

func newRegistry() *Registry { return NewRegistry(logger.Nop()) }

func TestRegisterDuplicate(t *testing.T) {
	r := newRegistry()
	if err := r.Register(&mockComponent{name: "http-server"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&mockComponent{name: "http-server"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestGet(t *testing.T) {
	r := newRegistry()
	_ = r.Register(&mockComponent{name: "telemetry"})

	if got := r.Get("telemetry"); got == nil || got.Name() != "telemetry" {
		t.Fatalf("expected telemetry component, got %v", got)
	}
	if r.Get("missing") != nil {
		t.Error("expected nil for unregistered component")
	}
	if len(r.All()) != 1 {
		t.Errorf("expected one component, got %d", len(r.All()))
	}
}

func TestStartStopOrder(t *testing.T) {
	r := newRegistry()
	var started, stopped []string
	for _, name := range []string{"telemetry", "whisper", "http-server"} {
		_ = r.Register(&mockComponent{name: name, startOrder: &started, stopOrder: &stopped})
	}

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	wantStart := []string{"telemetry", "whisper", "http-server"}
	wantStop := []string{"http-server", "whisper", "telemetry"}
	for i := range wantStart {
		if started[i] != wantStart[i] {
			t.Errorf("start order = %v, want %v", started, wantStart)
			break
		}
	}
	for i := range wantStop {
		if stopped[i] != wantStop[i] {
			t.Errorf("stop order = %v, want %v", stopped, wantStop)
			break
		}
	}
}

func TestStartAllErrorStopsOnlyStarted(t *testing.T) {
	r := newRegistry()
	var stopped []string
	_ = r.Register(&mockComponent{name: "telemetry", stopOrder: &stopped})
	_ = r.Register(&mockComponent{name: "http-server", startErr: errors.New("address in use"), stopOrder: &stopped})

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected error from StartAll")
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if len(stopped) != 1 || stopped[0] != "telemetry" {
		t.Errorf("expected only telemetry stopped, got %v", stopped)
	}
}

func TestStopAllWithErrors(t *testing.T) {
	r := newRegistry()
	flushErr := errors.New("flush failed")
	_ = r.Register(&mockComponent{name: "telemetry", stopErr: flushErr})
	_ = r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if !errors.Is(err, flushErr) {
		t.Errorf("expected wrapped stop error, got %v", err)
	}
}

func TestHealthAll(t *testing.T) {
	r := newRegistry()
	_ = r.Register(&mockComponent{name: "http-server", health: Health{Name: "http-server", Status: StatusHealthy}})
	_ = r.Register(NewProbe(stubProber{name: "whisper", up: true}, "engine", "http://localhost:8387"))
	_ = r.Register(NewProbe(stubProber{name: "pyannote", up: false}, "engine", "http://localhost:8388"))

	results := r.HealthAll(context.Background())
	want := []struct {
		name   string
		status HealthStatus
	}{
		{"http-server", StatusHealthy},
		{"whisper", StatusHealthy},
		{"pyannote", StatusDegraded},
	}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for i, w := range want {
		if results[i].Name != w.name || results[i].Status != w.status {
			t.Errorf("result %d = %+v, want %s/%s", i, results[i], w.name, w.status)
		}
	}
}

func TestProbeDescribe(t *testing.T) {
	p := NewProbe(stubProber{name: "llm"}, "engine", "gemini")
	var d Describable = p
	desc := d.Describe()
	if desc.Name != "llm" || desc.Type != "engine" || desc.Details != "gemini" {
		t.Errorf("unexpected description %+v", desc)
	}
	if err := p.Start(context.Background()); err != nil {
		t.Errorf("Start: %v", err)
	}
}
