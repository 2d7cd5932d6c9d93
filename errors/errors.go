package errors

import (
	"fmt"
	"net/http"
)

// AppError is what a meetnotes client sees when a request fails.
type AppError struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
	// HTTPStatus is the status the handler answers with.
	HTTPStatus int `json:"-"`
	// Cause is logged but never sent to the client.
	Cause error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause attaches the underlying error and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets one detail and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, 1)
	}
	e.Details[key] = value
	return e
}

// newError derives Retryable from the code so constructors cannot
// disagree with IsRetryableCode.
func newError(code ErrorCode, status int, message string, kv ...any) *AppError {
	e := &AppError{Code: code, Message: message, HTTPStatus: status, Retryable: IsRetryableCode(code)}
	for i := 0; i+1 < len(kv); i += 2 {
		e.WithDetail(kv[i].(string), kv[i+1])
	}
	return e
}

// Input errors. Raised before any processing starts.

// InvalidInput reports a field whose value cannot be used.
func InvalidInput(field, reason string) *AppError {
	e := newError(ErrCodeInvalidInput, http.StatusBadRequest, "Invalid input: "+reason)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation reports failed checks with a caller-supplied message.
func Validation(message string) *AppError {
	return newError(ErrCodeInvalidInput, http.StatusBadRequest, message)
}

// MissingField reports an absent form field or JSON property.
func MissingField(field string) *AppError {
	return newError(ErrCodeMissingField, http.StatusBadRequest, "Missing required field: "+field, "field", field)
}

// InvalidAudio reports an upload that cannot be decoded or holds no speech.
func InvalidAudio(reason string) *AppError {
	return newError(ErrCodeInvalidAudio, http.StatusBadRequest, "The audio could not be processed: "+reason)
}

// PayloadTooLarge reports an upload over the configured body limit.
func PayloadTooLarge(limit int64) *AppError {
	return newError(ErrCodePayloadTooLarge, http.StatusBadRequest, "The uploaded file is too large.", "limit_bytes", limit)
}

// NotFound reports an unknown resource such as a report id.
func NotFound(resource, id string) *AppError {
	e := newError(ErrCodeNotFound, http.StatusNotFound, fmt.Sprintf("The requested %s was not found.", resource), "resource", resource)
	if id != "" {
		e.WithDetail("id", id)
	}
	return e
}

// Availability errors. Retryable.

// ServiceUnavailable reports an engine that cannot be reached.
func ServiceUnavailable(service string) *AppError {
	return newError(ErrCodeServiceUnavailable, http.StatusServiceUnavailable,
		fmt.Sprintf("The %s is temporarily unavailable. Please try again.", service), "service", service)
}

// Timeout reports an operation that ran past its deadline.
func Timeout(operation string) *AppError {
	return newError(ErrCodeTimeout, http.StatusGatewayTimeout, "The request took too long. Please try again.", "operation", operation)
}

// Busy reports that no pipeline slot freed up in time.
func Busy() *AppError {
	return newError(ErrCodeBusy, http.StatusServiceUnavailable, "Another recording is being processed. Please try again shortly.")
}

// Failures behind the service boundary.

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return newError(ErrCodeInternal, http.StatusInternalServerError,
		"An unexpected error occurred. Please try again or contact support.").WithCause(cause)
}

// ExternalServiceError reports a failure answered by an engine.
func ExternalServiceError(service string, cause error) *AppError {
	return newError(ErrCodeExternalService, http.StatusBadGateway,
		fmt.Sprintf("The %s service encountered an error.", service), "service", service).WithCause(cause)
}

// StorageError reports a report that could not be written or read.
func StorageError(operation string, cause error) *AppError {
	return newError(ErrCodeStorage, http.StatusInternalServerError,
		"The report could not be stored.", "operation", operation).WithCause(cause)
}
