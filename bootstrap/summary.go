package bootstrap

import (
	"context"
	"time"

	"github.com/kbukum/meetnotes/component"
	"github.com/kbukum/meetnotes/logger"
)

// logSummary logs what started: one line per component with its health
// and description, then the HTTP routes.
func logSummary(ctx context.Context, log *logger.Logger, name, version string, registry *component.Registry, took time.Duration) {
	components := registry.All()
	healthy := 0
	for _, c := range components {
		h := c.Health(ctx)
		fields := logger.Fields("component", c.Name(), "status", string(h.Status))
		if h.Message != "" {
			fields["message"] = h.Message
		}
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			fields["type"] = desc.Type
			fields["details"] = desc.Details
		}
		if h.Status == component.StatusHealthy {
			healthy++
		}
		log.Info("Component", fields)

		if rp, ok := c.(component.RouteProvider); ok {
			for _, r := range rp.Routes() {
				log.Info("Route", logger.Fields("method", r.Method, "path", r.Path, "handler", r.Handler))
			}
		}
	}

	log.Info("Application ready", logger.Fields(
		"name", name,
		"version", version,
		"healthy", healthy,
		"components", len(components),
		logger.FieldDuration, took.Milliseconds(),
	))
}
