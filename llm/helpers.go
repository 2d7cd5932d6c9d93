package llm

import (
	"context"
	"strings"

	"github.com/kbukum/meetnotes/provider"
)

// Complete sends one user prompt with an optional system prompt and returns
// the trimmed text response. It accepts any RequestResponse so wrapped
// adapters (middleware chains, resilience) work the same way.
func Complete(ctx context.Context, p provider.RequestResponse[CompletionRequest, CompletionResponse], system, user string) (string, error) {
	resp, err := p.Execute(ctx, CompletionRequest{
		SystemPrompt: system,
		Messages:     []Message{{Role: "user", Content: user}},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}
