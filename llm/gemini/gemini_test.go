package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/meetnotes/llm"
	"github.com/kbukum/meetnotes/llm/gemini"
)

func TestBuildRequest(t *testing.T) {
	d := &gemini.Dialect{}
	body, err := d.BuildRequest(llm.CompletionRequest{
		SystemPrompt: "be brief",
		Messages:     []llm.Message{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}},
		Temperature:  0.2,
		MaxTokens:    256,
	})
	if err != nil {
		t.Fatal(err)
	}
	data, _ := json.Marshal(body)
	var got map[string]any
	_ = json.Unmarshal(data, &got)

	contents := got["contents"].([]any)
	if len(contents) != 2 || contents[1].(map[string]any)["role"] != "model" {
		t.Errorf("contents = %v", contents)
	}
	if got["systemInstruction"] == nil {
		t.Error("expected systemInstruction")
	}
	gc := got["generationConfig"].(map[string]any)
	if gc["maxOutputTokens"].(float64) != 256 || gc["temperature"].(float64) != 0.2 {
		t.Errorf("generationConfig = %v", gc)
	}

	if _, err := d.BuildRequest(llm.CompletionRequest{}); err == nil {
		t.Error("expected error for empty messages")
	}
}

func TestParseResponse(t *testing.T) {
	d := &gemini.Dialect{}
	resp, err := d.ParseResponse([]byte(`{
		"candidates": [{"content": {"role": "model", "parts": [{"text": "• one\n"}, {"text": "• two"}]}, "finishReason": "STOP"}],
		"usageMetadata": {"promptTokenCount": 10, "candidatesTokenCount": 5, "totalTokenCount": 15},
		"modelVersion": "gemini-1.5-flash"
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Content != "• one\n• two" || resp.Usage.TotalTokens != 15 || resp.Model != "gemini-1.5-flash" {
		t.Errorf("resp = %+v", resp)
	}

	_, err = d.ParseResponse([]byte(`{"candidates": [], "promptFeedback": {"blockReason": "SAFETY"}}`))
	if !errors.Is(err, gemini.ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}
}

func TestChatPath(t *testing.T) {
	d := &gemini.Dialect{}
	tests := []struct {
		name  string
		model string
		want  string
	}{
		{"bare model", "gemini-1.5-flash", "/v1beta/models/gemini-1.5-flash:generateContent"},
		{"resource name", "models/gemini-1.5-flash", "/v1beta/models/gemini-1.5-flash:generateContent"},
		{"escapes the rest", "tuned/a b", "/v1beta/models/tuned%2Fa%20b:generateContent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.ChatPath(tt.model); got != tt.want {
				t.Errorf("ChatPath(%q) = %q, want %q", tt.model, got, tt.want)
			}
		})
	}
}

func TestAdapterAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-1.5-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("api key header missing")
		}
		if r.URL.Query().Get("key") != "" {
			t.Errorf("api key must not be sent in the query")
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":" Summary. "}]}}]}`))
	}))
	defer srv.Close()

	a, err := llm.New(llm.Config{Dialect: gemini.DialectName, BaseURL: srv.URL, APIKey: "test-key", Model: "gemini-1.5-flash"})
	if err != nil {
		t.Fatal(err)
	}
	got, err := llm.Complete(context.Background(), a, "", "prompt\n\ntext")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Summary." {
		t.Errorf("got %q", got)
	}
}
