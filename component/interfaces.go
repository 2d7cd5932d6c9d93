package component

import "context"

type HealthStatus string

const (
	StatusHealthy HealthStatus = "healthy"
	// StatusDegraded still passes readiness; engines report it when
	// unreachable so the pipeline can fall back.
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// Health is one row of the /health report.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a piece of the service with a start/stop lifecycle: the
// HTTP server, telemetry and the engine probes.
type Component interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}

// Description is printed in the start-up summary. Type is "server",
// "engine" or "telemetry"; Details is an address or engine URL.
type Description struct {
	Name    string
	Type    string
	Details string
	Port    int
}

// Describable components show up in the start-up summary.
type Describable interface {
	Describe() Description
}

// Route is one HTTP route listed in the start-up summary.
type Route struct {
	Method  string
	Path    string
	Handler string
}

// RouteProvider is implemented by the server component.
type RouteProvider interface {
	Routes() []Route
}
