// Package ollama implements the llm.Dialect for a local Ollama server's
// /api/chat endpoint.
package ollama

import (
	"encoding/json"
	"fmt"

	"github.com/kbukum/meetnotes/httpclient"
	"github.com/kbukum/meetnotes/llm"
)

// DialectName is the registered name of this dialect.
const DialectName = "ollama"

const defaultBaseURL = "http://localhost:11434"

func init() {
	llm.RegisterDialect(DialectName, &Dialect{})
}

// Dialect maps llm requests onto the Ollama chat API.
type Dialect struct{}

var _ llm.Dialect = (*Dialect)(nil)

func (d *Dialect) Name() string             { return DialectName }
func (d *Dialect) DefaultBaseURL() string   { return defaultBaseURL }
func (d *Dialect) ChatPath(_ string) string { return "/api/chat" }
func (d *Dialect) HealthPath() string       { return "/api/tags" }

func (d *Dialect) Auth(apiKey string) httpclient.Credential {
	// Ollama is unauthenticated; a key only matters behind a proxy.
	return httpclient.BearerAuth(apiKey)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *chatOptions  `json:"options,omitempty"`
}

type chatResponse struct {
	Model           string      `json:"model"`
	Message         chatMessage `json:"message"`
	Done            bool        `json:"done"`
	PromptEvalCount int         `json:"prompt_eval_count,omitempty"`
	EvalCount       int         `json:"eval_count,omitempty"`
}

// BuildRequest creates a non-streaming chat request. The system prompt
// becomes the leading system message.
func (d *Dialect) BuildRequest(req llm.CompletionRequest) (any, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("ollama: model is required")
	}
	msgs := make([]chatMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		msgs = append(msgs, chatMessage{Role: m.Role, Content: m.Content})
	}

	out := chatRequest{Model: req.Model, Messages: msgs}
	if req.Temperature != 0 || req.MaxTokens != 0 {
		out.Options = &chatOptions{Temperature: req.Temperature, NumPredict: req.MaxTokens}
	}
	return out, nil
}

// ParseResponse decodes a complete (non-streamed) chat response.
func (d *Dialect) ParseResponse(body []byte) (*llm.CompletionResponse, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("ollama: decode response: %w", err)
	}
	return &llm.CompletionResponse{
		Content: resp.Message.Content,
		Model:   resp.Model,
		Usage: llm.Usage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		},
	}, nil
}
