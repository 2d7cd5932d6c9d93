// Package endpoint serves the operational probes next to the upload API.
package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/meetnotes/component"
	"github.com/kbukum/meetnotes/version"
)

// HealthChecker reports the health of every registered component.
type HealthChecker func(ctx context.Context) []component.Health

type probeBody struct {
	Status     string             `json:"status"`
	Service    string             `json:"service"`
	Timestamp  string             `json:"timestamp"`
	Components []component.Health `json:"components,omitempty"`
}

func reply(c *gin.Context, code int, service, status string, comps []component.Health) {
	c.JSON(code, probeBody{
		Status:     status,
		Service:    service,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: comps,
	})
}

// worst folds component states: any unhealthy wins, then degraded.
func worst(comps []component.Health) component.HealthStatus {
	out := component.StatusHealthy
	for _, h := range comps {
		switch h.Status {
		case component.StatusUnhealthy:
			return component.StatusUnhealthy
		case component.StatusDegraded:
			out = component.StatusDegraded
		}
	}
	return out
}

func check(c *gin.Context, checker HealthChecker) []component.Health {
	if checker == nil {
		return nil
	}
	return checker(c.Request.Context())
}

// Health lists every component. A degraded engine keeps 200 because the
// pipeline still answers with placeholder results.
func Health(service string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		comps := check(c, checker)
		status := worst(comps)
		code := http.StatusOK
		if status == component.StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		reply(c, code, service, string(status), comps)
	}
}

func Liveness(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		reply(c, http.StatusOK, service, "alive", nil)
	}
}

// Readiness fails only on an unhealthy component.
func Readiness(service string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if worst(check(c, checker)) == component.StatusUnhealthy {
			reply(c, http.StatusServiceUnavailable, service, "not_ready", nil)
			return
		}
		reply(c, http.StatusOK, service, "ready", nil)
	}
}

func Version() gin.HandlerFunc {
	return func(c *gin.Context) {
		v := version.Get()
		c.JSON(http.StatusOK, gin.H{
			"version":    v.Version,
			"git_commit": v.GitCommit,
			"build_time": v.BuildTime,
			"go_version": v.GoVersion,
			"dirty":      v.Dirty,
			"is_release": v.IsRelease(),
		})
	}
}
