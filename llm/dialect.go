package llm

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/kbukum/meetnotes/httpclient"
)

// Dialect maps the universal types to and from one provider's HTTP format.
type Dialect interface {
	// Name returns the dialect identifier (e.g. "gemini", "ollama").
	Name() string

	// DefaultBaseURL is used when the config leaves base_url empty.
	DefaultBaseURL() string

	// ChatPath returns the completion endpoint path for model.
	ChatPath(model string) string

	// HealthPath returns the health-check endpoint path. Empty means none.
	HealthPath() string

	// Auth returns how apiKey is attached to requests. Nil sends no credential.
	Auth(apiKey string) httpclient.Credential

	// BuildRequest maps a CompletionRequest to the provider's JSON request body.
	BuildRequest(req CompletionRequest) (any, error)

	// ParseResponse maps the provider's JSON response body to a CompletionResponse.
	ParseResponse(body []byte) (*CompletionResponse, error)
}

var (
	dialectsMu sync.RWMutex
	dialects   = map[string]Dialect{}
)

// RegisterDialect is called from each dialect package's init.
func RegisterDialect(name string, d Dialect) {
	dialectsMu.Lock()
	dialects[name] = d
	dialectsMu.Unlock()
}

func GetDialect(name string) (Dialect, error) {
	dialectsMu.RLock()
	d, ok := dialects[name]
	dialectsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("llm: unknown dialect %q (known: %v)", name, Dialects())
	}
	return d, nil
}

// Dialects lists the registered names in order.
func Dialects() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	return slices.Sorted(maps.Keys(dialects))
}
