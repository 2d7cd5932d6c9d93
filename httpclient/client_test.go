package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/kbukum/meetnotes/errors"
	"github.com/kbukum/meetnotes/logger"
)

func newTestClient(t *testing.T, url string, mutate ...func(*Config)) *Client {
	t.Helper()
	cfg := Config{Name: "whisper", BaseURL: url}
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Config{Name: "llm"}); err == nil || !strings.Contains(err.Error(), "base_url") {
		t.Errorf("expected base_url error, got %v", err)
	}
}

func TestClient_PostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/generate" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %s", ct)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": body["prompt"]})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/")
	resp, err := Post[map[string]string](context.Background(), c, "/v1/generate", map[string]string{"prompt": "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp["echo"] != "hi" {
		t.Errorf("expected echo, got %v", resp)
	}
}

func TestClient_Auth(t *testing.T) {
	tests := []struct {
		name  string
		auth  Credential
		check func(*http.Request) bool
	}{
		{"bearer", BearerAuth("hf_secret"), func(r *http.Request) bool {
			return r.Header.Get("Authorization") == "Bearer hf_secret"
		}},
		{"header key", APIKeyAuthHeader("k1", "x-goog-api-key"), func(r *http.Request) bool {
			return r.Header.Get("x-goog-api-key") == "k1"
		}},
		{"query key", APIKeyAuthQuery("k2", "key"), func(r *http.Request) bool {
			return r.URL.Query().Get("key") == "k2"
		}},
		{"empty token sends nothing", BearerAuth(""), func(r *http.Request) bool {
			return r.Header.Get("Authorization") == ""
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !tt.check(r) {
					t.Errorf("auth not applied: headers=%v query=%s", r.Header, r.URL.RawQuery)
				}
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL, func(c *Config) { c.Auth = tt.auth })
			if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestClient_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		if r.FormValue("task") != "translate" {
			t.Errorf("expected task field, got %q", r.FormValue("task"))
		}
		f, hdr, err := r.FormFile("audio")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if hdr.Filename != "chunk0.wav" || string(data) != "RIFF" {
			t.Errorf("file = %s %q", hdr.Filename, data)
		}
		if ct := hdr.Header.Get("Content-Type"); ct != "audio/wav" {
			t.Errorf("part content type = %q", ct)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, func(c *Config) {
		c.Headers = map[string]string{"Content-Type": "application/json"}
	})
	_, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/asr",
		Body: &MultipartBody{
			Fields: map[string]string{"task": "translate"},
			Files: []FileField{{
				FieldName: "audio", FileName: "chunk0.wav", ContentType: "audio/wav",
				Reader: strings.NewReader("RIFF"),
			}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		kind      Kind
		retryable bool
		message   string
	}{
		{"auth", http.StatusUnauthorized, "nope", KindAuth, false, "nope"},
		{"not found", http.StatusNotFound, "", KindNotFound, false, "Not Found"},
		{"rate limit", http.StatusTooManyRequests, `{"error":{"message":"quota exceeded"}}`, KindRateLimit, true, "quota exceeded"},
		{"rejected", http.StatusUnprocessableEntity, `{"detail":"audio too short"}`, KindRejected, false, "audio too short"},
		{"server", http.StatusBadGateway, "<html>bad gateway</html>", KindServer, true, "Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL)
			resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if e.Kind != tt.kind || e.Retryable != tt.retryable || e.StatusCode != tt.status {
				t.Errorf("got kind=%s retryable=%v status=%d", e.Kind, e.Retryable, e.StatusCode)
			}
			if e.Message != tt.message {
				t.Errorf("message = %q, want %q", e.Message, tt.message)
			}
			if resp == nil || string(resp.Body) != tt.body {
				t.Error("expected response body alongside the error")
			}
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, func(c *Config) { c.Timeout = 10 * time.Millisecond })
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if !IsTimeout(err) {
		t.Errorf("expected timeout, got %v", err)
	}
	if !apperrors.HasCode(ToAppError("whisper", err), apperrors.ErrCodeTimeout) {
		t.Error("expected TIMEOUT app error")
	}
}

func TestClient_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if !c.Ping(context.Background(), "/health") {
		t.Error("expected healthy")
	}
	if c.Ping(context.Background(), "/missing") {
		t.Error("expected unhealthy on 404")
	}
}

func TestClient_PropagatesRequestID(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(RequestIDHeader)
	}))
	defer srv.Close()

	ctx := logger.WithRequestID(context.Background(), "req-7")
	if _, err := newTestClient(t, srv.URL).Do(ctx, Request{Method: http.MethodGet, Path: "/"}); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got != "req-7" {
		t.Errorf("%s = %q", RequestIDHeader, got)
	}
}

func TestToAppError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      apperrors.ErrorCode
		retryable bool
	}{
		{"connection", NewConnectionError(errors.New("refused")), apperrors.ErrCodeServiceUnavailable, true},
		{"server", ClassifyStatusCode(500, nil), apperrors.ErrCodeExternalService, true},
		{"auth", ClassifyStatusCode(401, nil), apperrors.ErrCodeExternalService, false},
		{"decode", NewDecodeError(errors.New("bad json")), apperrors.ErrCodeExternalService, false},
		{"plain", errors.New("boom"), apperrors.ErrCodeExternalService, true},
		{"already app", apperrors.Busy(), apperrors.ErrCodeBusy, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr, ok := apperrors.AsAppError(ToAppError("pyannote", tt.err))
			if !ok {
				t.Fatal("expected AppError")
			}
			if appErr.Code != tt.code || appErr.Retryable != tt.retryable {
				t.Errorf("got %s retryable=%v", appErr.Code, appErr.Retryable)
			}
		})
	}
	if ToAppError("x", nil) != nil {
		t.Error("nil in, nil out")
	}
}
