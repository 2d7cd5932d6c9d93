// Package server provides the meetnotes HTTP server: Gin routes behind a
// net/http middleware stack, served over HTTP/1.1 and h2c.
//
// # Middleware
//
// Applied around every request (server/middleware), outermost first:
//
//   - Recovery: panics become INTERNAL_ERROR responses
//   - RequestID: X-Request-Id generation and propagation into the logger
//   - CORS: cross-origin headers and preflight
//   - BodySizeLimit: caps upload size
//   - RequestLogger: method, path, status and duration
//
// # Endpoints
//
// RegisterProbes adds (server/endpoint):
//
//   - /health: component health aggregation
//   - /liveness: process liveness
//   - /readiness: 503 while a component is unhealthy
//   - /version: build information
package server
