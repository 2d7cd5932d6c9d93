package component

import "context"

// Prober is anything that can report whether it is reachable, such as an
// engine adapter.
type Prober interface {
	Name() string
	IsAvailable(ctx context.Context) bool
}

// Probe is a Component around a Prober. Start and Stop do nothing. An
// unreachable prober reports degraded because the pipeline keeps working
// with sentinel results.
type Probe struct {
	prober  Prober
	kind    string
	details string
}

// NewProbe wraps p. kind and details feed Describe.
func NewProbe(p Prober, kind, details string) *Probe {
	return &Probe{prober: p, kind: kind, details: details}
}

// Name returns the prober's name.
func (p *Probe) Name() string { return p.prober.Name() }

// Start implements Component.
func (p *Probe) Start(_ context.Context) error { return nil }

// Stop implements Component.
func (p *Probe) Stop(_ context.Context) error { return nil }

// Health asks the prober.
func (p *Probe) Health(ctx context.Context) Health {
	if p.prober.IsAvailable(ctx) {
		return Health{Name: p.Name(), Status: StatusHealthy}
	}
	return Health{Name: p.Name(), Status: StatusDegraded, Message: "not reachable"}
}

// Describe implements Describable.
func (p *Probe) Describe() Description {
	return Description{Name: p.Name(), Type: p.kind, Details: p.details}
}
