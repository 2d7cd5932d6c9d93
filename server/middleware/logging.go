package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/meetnotes/logger"
)

// slowRequest marks requests worth flagging; uploads routinely exceed it.
const slowRequest = 30 * time.Second

// RequestLogger returns middleware that logs every request with method,
// path, status code, and duration. Probe paths are skipped.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isProbeEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			duration := time.Since(start)

			fields := logger.Fields(
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				logger.FieldDuration, duration.Milliseconds(),
				"bytes_out", sw.written,
			)
			if id := r.Header.Get(RequestIDHeader); id != "" {
				fields["request_id"] = id
			}
			if r.ContentLength > 0 {
				fields["bytes_in"] = r.ContentLength
			}
			if duration > slowRequest {
				fields["slow"] = true
			}

			logByStatus(log, fields, sw.status)
		})
	}
}

func isProbeEndpoint(path string) bool {
	switch path {
	case "/health", "/liveness", "/readiness":
		return true
	}
	return false
}

// logByStatus picks the level from the status: 5xx error, 4xx warn.
func logByStatus(log *logger.Logger, fields map[string]any, status int) {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Info("Request completed", fields)
	}
}
