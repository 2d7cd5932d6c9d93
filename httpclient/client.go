package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kbukum/meetnotes/logger"
)

// Client calls one engine over HTTP.
type Client struct {
	cfg  Config
	http *http.Client
}

// New validates cfg and returns a client with its own transport.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:   cfg.Timeout,
		},
	}, nil
}

func (c *Client) Name() string { return c.cfg.Name }

// Ping reports whether GET path answers 2xx.
func (c *Client) Ping(ctx context.Context, path string) bool {
	_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path})
	return err == nil
}

// Do sends req and reads the whole body. A non-2xx status returns the
// response together with its classified *Error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil || isNetTimeout(err) {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isNetTimeout(err) {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	out := &Response{StatusCode: resp.StatusCode, Headers: resp.Header, Body: body}
	if e := ClassifyStatusCode(resp.StatusCode, body); e != nil {
		return out, e
	}
	return out, nil
}

// Post sends body and decodes the JSON answer into T. An empty answer
// leaves T at its zero value.
func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var out T
	resp, err := c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return out, NewDecodeError(err)
	}
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := req.Path
	if !strings.Contains(target, "://") {
		target = strings.TrimSuffix(c.cfg.BaseURL, "/") + "/" + strings.TrimPrefix(target, "/")
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, newRequestError("encode body: %v", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, newRequestError("create request: %v", err)
	}

	if id := logger.RequestIDFromContext(ctx); id != "" {
		httpReq.Header.Set(RequestIDHeader, id)
	}
	for _, headers := range []map[string]string{c.cfg.Headers, req.Headers} {
		for k, v := range headers {
			httpReq.Header.Set(k, v)
		}
	}

	// The multipart boundary lives in the content type.
	_, multipart := req.Body.(*MultipartBody)
	if contentType != "" && (multipart || httpReq.Header.Get("Content-Type") == "") {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if c.cfg.Auth != nil {
		c.cfg.Auth(httpReq)
	}
	return httpReq, nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case *MultipartBody:
		return v.encode()
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}
