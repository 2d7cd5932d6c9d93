package llm

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kbukum/meetnotes/httpclient"
	"github.com/kbukum/meetnotes/provider"
)

var ErrNoDialect = errors.New("llm: dialect is required")

var _ provider.RequestResponse[CompletionRequest, CompletionResponse] = (*Adapter)(nil)

// Adapter speaks to one model endpoint. The Dialect owns the wire format;
// the adapter owns transport, auth and request defaults.
type Adapter struct {
	http     *httpclient.Client
	dialect  Dialect
	defaults CompletionRequest
}

// New looks the dialect up by cfg.Dialect.
func New(cfg Config) (*Adapter, error) {
	cfg.ApplyDefaults()
	d, err := GetDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	return NewWithDialect(d, cfg)
}

func NewWithDialect(d Dialect, cfg Config) (*Adapter, error) {
	if d == nil {
		return nil, ErrNoDialect
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := httpclient.New(httpclient.Config{
		Name:    d.Name(),
		BaseURL: cmp.Or(cfg.BaseURL, d.DefaultBaseURL()),
		Timeout: cfg.Timeout,
		Auth:    d.Auth(cfg.APIKey),
		Headers: map[string]string{"Accept": "application/json"},
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create http client: %w", err)
	}
	return &Adapter{
		http:    client,
		dialect: d,
		defaults: CompletionRequest{
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		},
	}, nil
}

func (a *Adapter) Name() string { return a.dialect.Name() }

// IsAvailable pings the dialect's health path; hosted APIs without one
// count as reachable.
func (a *Adapter) IsAvailable(ctx context.Context) bool {
	if p := a.dialect.HealthPath(); p != "" {
		return a.http.Ping(ctx, p)
	}
	return true
}

// Execute fills unset request fields from config and runs one completion.
func (a *Adapter) Execute(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	req.Model = cmp.Or(req.Model, a.defaults.Model)
	req.Temperature = cmp.Or(req.Temperature, a.defaults.Temperature)
	req.MaxTokens = cmp.Or(req.MaxTokens, a.defaults.MaxTokens)

	body, err := a.dialect.BuildRequest(req)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llm: build request: %w", err)
	}
	raw, err := httpclient.Post[json.RawMessage](ctx, a.http, a.dialect.ChatPath(req.Model), body)
	if err != nil {
		return CompletionResponse{}, httpclient.ToAppError(a.Name(), err)
	}
	out, err := a.dialect.ParseResponse(raw)
	if err != nil {
		return CompletionResponse{}, httpclient.ToAppError(a.Name(), httpclient.NewDecodeError(err))
	}
	return *out, nil
}

func (a *Adapter) Dialect() Dialect { return a.dialect }
