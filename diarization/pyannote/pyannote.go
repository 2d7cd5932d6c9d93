// Package pyannote is a diarization backend for a pyannote HTTP sidecar.
//
// The sidecar accepts POST /diarize with a multipart "audio" file and
// optional speaker-count fields, and answers GET /health. A configured
// Hugging Face token is forwarded as a bearer credential.
package pyannote

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kbukum/meetnotes/diarization"
	apperrors "github.com/kbukum/meetnotes/errors"
	"github.com/kbukum/meetnotes/httpclient"
	"github.com/kbukum/meetnotes/provider"
)

const (
	// ProviderName is the registered name for the pyannote provider.
	ProviderName = "pyannote"

	defaultURL     = "http://localhost:8388"
	defaultTimeout = 300 * time.Second
)

func init() {
	diarization.RegisterFactory(ProviderName, Factory())
}

// Config holds configuration for the pyannote provider.
type Config struct {
	URL     string        `json:"url"`
	HFToken string        `json:"-"`
	Timeout time.Duration `json:"timeout"`
}

// Provider implements diarization.Provider against the sidecar.
type Provider struct {
	client *httpclient.Client
}

var _ diarization.Provider = (*Provider)(nil)

// NewProvider creates a pyannote provider. An empty token sends no
// credential.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.URL == "" {
		cfg.URL = defaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	client, err := httpclient.New(httpclient.Config{
		Name:    ProviderName,
		BaseURL: cfg.URL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.BearerAuth(cfg.HFToken),
	})
	if err != nil {
		return nil, fmt.Errorf("pyannote: %w", err)
	}
	return &Provider{client: client}, nil
}

// Factory builds Providers from a generic config map.
func Factory() provider.Factory[diarization.Provider] {
	return func(cfg map[string]any) (diarization.Provider, error) {
		pc := Config{}
		if v, ok := cfg["url"].(string); ok {
			pc.URL = v
		}
		if v, ok := cfg["hf_token"].(string); ok {
			pc.HFToken = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			pc.Timeout = v
		}
		return NewProvider(pc)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks the sidecar's health endpoint.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	return p.client.Ping(ctx, "/health")
}

// Execute uploads the audio file and returns chunk-local speaker turns.
func (p *Provider) Execute(ctx context.Context, req diarization.Request) (*diarization.Diarization, error) {
	f, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("pyannote: open audio: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	fields := map[string]string{}
	setCount(fields, "num_speakers", req.NumSpeakers)
	setCount(fields, "min_speakers", req.MinSpeakers)
	setCount(fields, "max_speakers", req.MaxSpeakers)

	body := &httpclient.MultipartBody{
		Fields: fields,
		Files: []httpclient.FileField{{
			FieldName:   "audio",
			FileName:    filepath.Base(req.AudioPath),
			ContentType: "audio/wav",
			Reader:      f,
		}},
	}

	resp, err := httpclient.Post[pyannoteResponse](ctx, p.client, "/diarize", body)
	if err != nil {
		return nil, httpclient.ToAppError(ProviderName, err)
	}
	// The sidecar reports a missing or unloaded pipeline in-band.
	if resp.Error != "" {
		return nil, apperrors.ExternalServiceError(ProviderName, errors.New(resp.Error))
	}
	return resp.toDiarization(), nil
}

func setCount(fields map[string]string, key string, n int) {
	if n > 0 {
		fields[key] = strconv.Itoa(n)
	}
}

type pyannoteResponse struct {
	Segments    []pyannoteSegment `json:"segments"`
	NumSpeakers int               `json:"num_speakers"`
	Error       string            `json:"error,omitempty"`
}

type pyannoteSegment struct {
	SpeakerID string  `json:"speaker_id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

func (r pyannoteResponse) toDiarization() *diarization.Diarization {
	turns := make([]diarization.Turn, len(r.Segments))
	for i, seg := range r.Segments {
		turns[i] = diarization.Turn{Start: seg.StartTime, End: seg.EndTime, SpeakerID: seg.SpeakerID}
	}
	return &diarization.Diarization{Turns: turns, NumSpeakers: r.NumSpeakers}
}
