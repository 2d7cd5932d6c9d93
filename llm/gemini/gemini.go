// Package gemini implements the llm.Dialect for the Google Gemini
// generateContent API.
package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/kbukum/meetnotes/httpclient"
	"github.com/kbukum/meetnotes/llm"
)

// DialectName is the registered name of this dialect.
const DialectName = "gemini"

const defaultBaseURL = "https://generativelanguage.googleapis.com"

func init() {
	llm.RegisterDialect(DialectName, &Dialect{})
}

// ErrNoCandidates is returned when the response carries no usable text,
// for example when the prompt was blocked.
var ErrNoCandidates = errors.New("gemini: response has no candidates")

// Dialect maps llm requests onto Gemini's REST API.
type Dialect struct{}

var _ llm.Dialect = (*Dialect)(nil)

func (d *Dialect) Name() string           { return DialectName }
func (d *Dialect) DefaultBaseURL() string { return defaultBaseURL }
func (d *Dialect) HealthPath() string     { return "" }

// ChatPath accepts both "gemini-1.5-flash" and the resource form
// "models/gemini-1.5-flash".
func (d *Dialect) ChatPath(model string) string {
	model = strings.TrimPrefix(model, "models/")
	return "/v1beta/models/" + url.PathEscape(model) + ":generateContent"
}

// Auth sends the key in the x-goog-api-key header so it never lands in
// request logs as part of the URL.
func (d *Dialect) Auth(apiKey string) httpclient.Credential {
	return httpclient.APIKeyAuthHeader(apiKey, "x-goog-api-key")
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion   string `json:"modelVersion"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

// BuildRequest maps chat roles onto Gemini's "user" and "model" roles.
func (d *Dialect) BuildRequest(req llm.CompletionRequest) (any, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("gemini: at least one message is required")
	}
	out := generateRequest{Contents: make([]content, 0, len(req.Messages))}
	for _, m := range req.Messages {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		out.Contents = append(out.Contents, content{Role: role, Parts: []part{{Text: m.Content}}})
	}
	if req.SystemPrompt != "" {
		out.SystemInstruction = &content{Parts: []part{{Text: req.SystemPrompt}}}
	}
	if req.Temperature != 0 || req.MaxTokens != 0 {
		gc := &generationConfig{MaxOutputTokens: req.MaxTokens}
		if req.Temperature != 0 {
			t := req.Temperature
			gc.Temperature = &t
		}
		out.GenerationConfig = gc
	}
	return out, nil
}

// ParseResponse concatenates the text parts of the first candidate.
func (d *Dialect) ParseResponse(body []byte) (*llm.CompletionResponse, error) {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("%w: blocked (%s)", ErrNoCandidates, resp.PromptFeedback.BlockReason)
		}
		return nil, ErrNoCandidates
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return &llm.CompletionResponse{
		Content: sb.String(),
		Model:   resp.ModelVersion,
		Usage: llm.Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		},
	}, nil
}
