package server

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/meetnotes/component"
)

const componentName = "http-server"

var (
	_ component.Component     = (*ServerComponent)(nil)
	_ component.Describable   = (*ServerComponent)(nil)
	_ component.RouteProvider = (*ServerComponent)(nil)
)

// ServerComponent puts the Server under the component registry.
type ServerComponent struct {
	server *Server
}

func NewComponent(s *Server) *ServerComponent { return &ServerComponent{server: s} }

func (sc *ServerComponent) Name() string                   { return componentName }
func (sc *ServerComponent) Start(ctx context.Context) error { return sc.server.Start(ctx) }
func (sc *ServerComponent) Stop(ctx context.Context) error  { return sc.server.Stop(ctx) }

// Health is healthy once the listener is bound.
func (sc *ServerComponent) Health(context.Context) component.Health {
	h := component.Health{Name: componentName, Status: component.StatusHealthy}
	if sc.server.listener == nil {
		h.Status, h.Message = component.StatusUnhealthy, "HTTP server not listening"
	}
	return h
}

func (sc *ServerComponent) Describe() component.Description {
	cfg := sc.server.config
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Port:    cfg.Port,
	}
}

// Routes lists the API routes first and the probe routes after them.
func (sc *ServerComponent) Routes() []component.Route {
	routes := make([]component.Route, 0)
	for _, r := range sc.server.engine.Routes() {
		routes = append(routes, component.Route{Method: r.Method, Path: r.Path, Handler: formatHandlerName(r.Handler)})
	}
	slices.SortFunc(routes, func(a, b component.Route) int {
		if pa, pb := isProbe(a.Path), isProbe(b.Path); pa != pb {
			if pa {
				return 1
			}
			return -1
		}
		return cmp.Or(strings.Compare(a.Path, b.Path), strings.Compare(a.Method, b.Method))
	})
	return routes
}

func isProbe(path string) bool {
	switch path {
	case "/health", "/liveness", "/readiness", "/version":
		return true
	}
	return false
}

// formatHandlerName trims gin's reflected handler names:
// "…/handler.(*Handler).Upload-fm" is "Handler.Upload" and a closure such
// as "…/endpoint.Health.func1" is "health".
func formatHandlerName(full string) string {
	name := strings.TrimSuffix(full, "-fm")
	name = name[strings.LastIndex(name, "/")+1:]
	name = strings.NewReplacer("(*", "", ")", "").Replace(name)

	parts := strings.Split(name, ".")
	if strings.HasPrefix(parts[len(parts)-1], "func") {
		for _, p := range slices.Backward(parts) {
			if !strings.HasPrefix(p, "func") {
				return strings.ToLower(p)
			}
		}
	}
	if len(parts) > 1 && strings.ToLower(parts[0]) == parts[0] {
		return strings.Join(parts[1:], ".")
	}
	return name
}
