package errors

// ErrorCode is the machine-readable code in an error response.
type ErrorCode string

const (
	ErrCodeInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField    ErrorCode = "MISSING_FIELD"
	ErrCodeInvalidAudio    ErrorCode = "INVALID_AUDIO"
	ErrCodePayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"

	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeTimeout            ErrorCode = "TIMEOUT"
	// ErrCodeBusy means the pipeline had no free slot for another recording.
	ErrCodeBusy ErrorCode = "BUSY"

	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	// ErrCodeStorage means a report could not be written or read.
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"
)

// IsRetryableCode reports whether a client may retry the same request.
func IsRetryableCode(code ErrorCode) bool {
	switch code {
	case ErrCodeServiceUnavailable, ErrCodeTimeout, ErrCodeBusy, ErrCodeExternalService, ErrCodeStorage:
		return true
	}
	return false
}
