package httpclient

import "net/http"

// RequestIDHeader carries the inbound request id to the engines so their
// logs line up with ours.
const RequestIDHeader = "X-Request-Id"

// Request describes an outbound call to an engine.
type Request struct {
	Method string
	// Path is joined to the client's BaseURL unless it is absolute.
	Path string
	// Headers override the client defaults for this call.
	Headers map[string]string
	// Body is a *MultipartBody, io.Reader, []byte, or a value to encode
	// as JSON.
	Body any
}

// Response is a fully read engine response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}
