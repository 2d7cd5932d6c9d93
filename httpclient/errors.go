package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	apperrors "github.com/kbukum/meetnotes/errors"
)

// Kind classifies a failed engine call.
type Kind string

const (
	KindTimeout    Kind = "timeout"
	KindConnection Kind = "connection"
	KindAuth       Kind = "auth"
	KindNotFound   Kind = "not_found"
	KindRateLimit  Kind = "rate_limit"
	KindRejected   Kind = "rejected"
	KindServer     Kind = "server"
	KindDecode     Kind = "decode"
)

// Error is a failed engine call. StatusCode is zero when no response
// arrived.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Retryable  bool
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func wrapErr(kind Kind, retryable bool, err error) *Error {
	return &Error{Kind: kind, Message: err.Error(), Retryable: retryable, Err: err}
}

// NewTimeoutError marks a call that ran out of time.
func NewTimeoutError(err error) *Error { return wrapErr(KindTimeout, true, err) }

// NewConnectionError marks a call that never got a response.
func NewConnectionError(err error) *Error { return wrapErr(KindConnection, true, err) }

// NewDecodeError marks a 2xx response whose body did not decode.
func NewDecodeError(err error) *Error { return wrapErr(KindDecode, false, err) }

func newRequestError(format string, args ...any) *Error {
	return &Error{Kind: KindRejected, Message: fmt.Sprintf(format, args...)}
}

// ClassifyStatusCode turns a non-2xx engine response into an *Error and
// returns nil otherwise. The message is lifted from the body when the
// engine reports one.
func ClassifyStatusCode(status int, body []byte) *Error {
	if status >= 200 && status < 300 {
		return nil
	}
	e := &Error{Kind: KindServer, StatusCode: status, Message: engineMessage(status, body), Body: body}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = KindAuth
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
	case status == http.StatusTooManyRequests:
		e.Kind, e.Retryable = KindRateLimit, true
	case status >= 400 && status < 500:
		e.Kind = KindRejected
	case status >= 500:
		e.Retryable = true
	}
	return e
}

// engineMessage reads {"detail": "..."} (sidecar engines) or
// {"error": {"message": "..."}} (hosted models) from an error body.
func engineMessage(status int, body []byte) string {
	var payload struct {
		Detail any `json:"detail"`
		Error  struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if s, ok := payload.Detail.(string); ok && s != "" {
			return s
		}
		if payload.Error.Message != "" {
			return payload.Error.Message
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" && len(s) <= 200 && !strings.HasPrefix(s, "<") {
		return s
	}
	return http.StatusText(status)
}

// IsTimeout reports whether err is a timed-out engine call.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindTimeout
}

// ToAppError maps an engine call failure onto a service AppError for the
// named engine, keeping the retry decision made here.
func ToAppError(service string, err error) error {
	if err == nil || apperrors.IsAppError(err) {
		return err
	}
	var e *Error
	if !errors.As(err, &e) {
		return apperrors.ExternalServiceError(service, err)
	}
	switch e.Kind {
	case KindTimeout:
		return apperrors.Timeout(service).WithCause(err)
	case KindConnection:
		return apperrors.ServiceUnavailable(service).WithCause(err)
	}
	appErr := apperrors.ExternalServiceError(service, err)
	appErr.Retryable = e.Retryable
	if e.StatusCode > 0 {
		appErr = appErr.WithDetail("status", e.StatusCode)
	}
	return appErr
}

func isNetTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
