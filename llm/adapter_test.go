package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/kbukum/meetnotes/errors"
	"github.com/kbukum/meetnotes/httpclient"
)

type mockDialect struct {
	healthPath string
	parseErr   error
}

func (d *mockDialect) Name() string                 { return "mock" }
func (d *mockDialect) DefaultBaseURL() string       { return "http://127.0.0.1:1" }
func (d *mockDialect) ChatPath(model string) string { return "/chat/" + model }
func (d *mockDialect) HealthPath() string           { return d.healthPath }
func (d *mockDialect) Auth(key string) httpclient.Credential {
	return httpclient.BearerAuth(key)
}

func (d *mockDialect) BuildRequest(req CompletionRequest) (any, error) {
	return map[string]any{
		"messages":    req.Messages,
		"system":      req.SystemPrompt,
		"temperature": req.Temperature,
	}, nil
}

func (d *mockDialect) ParseResponse(body []byte) (*CompletionResponse, error) {
	if d.parseErr != nil {
		return nil, d.parseErr
	}
	var raw struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	return &CompletionResponse{Content: raw.Content}, nil
}

func TestAdapter_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/test-model" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("missing auth header")
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["temperature"].(float64) != 0.3 {
			t.Errorf("default temperature not applied: %v", body["temperature"])
		}
		_, _ = w.Write([]byte(`{"content":"  A concise summary.  "}`))
	}))
	defer srv.Close()

	a, err := NewWithDialect(&mockDialect{}, Config{BaseURL: srv.URL, APIKey: "sk-test", Model: "test-model", Temperature: 0.3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Complete(context.Background(), a, "", "Summarize\n\ntext")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "A concise summary." {
		t.Errorf("expected trimmed content, got %q", got)
	}
}

func TestAdapter_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		parseErr error
		code     apperrors.ErrorCode
	}{
		{"server error", http.StatusInternalServerError, `{}`, nil, apperrors.ErrCodeExternalService},
		{"auth error", http.StatusForbidden, `{}`, nil, apperrors.ErrCodeExternalService},
		{"parse error", http.StatusOK, `{"content":"x"}`, errors.New("no candidates"), apperrors.ErrCodeExternalService},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			a, err := NewWithDialect(&mockDialect{parseErr: tt.parseErr}, Config{BaseURL: srv.URL, Model: "m"})
			if err != nil {
				t.Fatal(err)
			}
			_, err = a.Execute(context.Background(), CompletionRequest{Messages: []Message{{Role: "user", Content: "hi"}}})
			if !apperrors.HasCode(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestAdapter_IsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	up, _ := NewWithDialect(&mockDialect{healthPath: "/health"}, Config{BaseURL: srv.URL, Model: "m"})
	if !up.IsAvailable(context.Background()) {
		t.Error("expected available")
	}
	down, _ := NewWithDialect(&mockDialect{healthPath: "/nope"}, Config{BaseURL: srv.URL, Model: "m"})
	if down.IsAvailable(context.Background()) {
		t.Error("expected unavailable")
	}
	noHealth, _ := NewWithDialect(&mockDialect{}, Config{Model: "m"})
	if !noHealth.IsAvailable(context.Background()) {
		t.Error("dialect without health path is assumed available")
	}
}

func TestNew_UnknownDialect(t *testing.T) {
	_, err := New(Config{Dialect: "nope", Model: "m"})
	if err == nil || !strings.Contains(err.Error(), "unknown dialect") {
		t.Errorf("expected unknown dialect error, got %v", err)
	}
	if _, err := NewWithDialect(nil, Config{Model: "m"}); !errors.Is(err, ErrNoDialect) {
		t.Errorf("expected ErrNoDialect, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		errMsg string
	}{
		{"ok", Config{Model: "gemini-1.5-flash"}, ""},
		{"missing model", Config{}, "model is required"},
		{"temperature range", Config{Model: "m", Temperature: 3}, "temperature"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.ApplyDefaults()
			if cfg.Dialect != "gemini" {
				t.Errorf("default dialect = %q", cfg.Dialect)
			}
			err := cfg.Validate()
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected %q, got %v", tt.errMsg, err)
			}
		})
	}
}

func TestDialectRegistry(t *testing.T) {
	RegisterDialect("mock-registry", &mockDialect{})
	d, err := GetDialect("mock-registry")
	if err != nil || d.Name() != "mock" {
		t.Fatalf("GetDialect = %v, %v", d, err)
	}
	found := false
	for _, name := range Dialects() {
		found = found || name == "mock-registry"
	}
	if !found {
		t.Error("registered dialect missing from Dialects()")
	}
}
