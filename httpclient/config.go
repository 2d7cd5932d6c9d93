package httpclient

import (
	"fmt"
	"net/url"
	"time"
)

const defaultTimeout = 30 * time.Second

// Config is built by each engine adapter from its own section; it is not
// loaded from files directly.
type Config struct {
	// Name labels the engine in logs and errors.
	Name    string
	BaseURL string
	// Timeout bounds a single call, including reading the body.
	Timeout time.Duration
	Auth    Credential
	// Headers are sent on every call unless the request overrides them.
	Headers map[string]string
}

func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "engine"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("httpclient: %s: base_url is required", c.Name)
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("httpclient: %s: base_url %q is not an absolute URL", c.Name, c.BaseURL)
	}
	return nil
}
