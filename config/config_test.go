package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "meetnotes"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.ServiceName != "meetnotes" {
			t.Errorf("expected logging service name to follow config name, got %q", cfg.Logging.ServiceName)
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "meetnotes", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func() ServiceConfig {
		c := ServiceConfig{Name: "meetnotes", Environment: "staging"}
		c.ApplyDefaults()
		return c
	}
	tests := []struct {
		name   string
		mutate func(*ServiceConfig)
		errMsg string
	}{
		{"valid", func(*ServiceConfig) {}, ""},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, "config.name is required"},
		{"invalid environment", func(c *ServiceConfig) { c.Environment = "qa" }, "config.environment must be one of"},
		{"invalid log level", func(c *ServiceConfig) { c.Logging.Level = "chatty" }, "config.logging"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %v", tc.errMsg, err)
			}
		})
	}
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Diarization   struct {
		URL     string `mapstructure:"url"`
		HFToken string `mapstructure:"hf_token"`
	} `mapstructure:"diarization"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yml", `
name: meetnotes
environment: staging
diarization:
  url: http://localhost:8388
`)

	var cfg testConfig
	if err := LoadConfig("meetnotes", &cfg, WithConfigFile(configPath), WithEnvFile(filepath.Join(dir, "none"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "meetnotes" {
		t.Errorf("expected name 'meetnotes', got %q", cfg.Name)
	}
	if cfg.Diarization.URL != "http://localhost:8388" {
		t.Errorf("expected diarization url from yaml, got %q", cfg.Diarization.URL)
	}
}

func TestLoadConfigEnvOverridesNestedKey(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yml", "name: meetnotes\n")
	t.Setenv("DIARIZATION_HF_TOKEN", "from-env")

	var cfg testConfig
	if err := LoadConfig("meetnotes", &cfg, WithConfigFile(configPath), WithEnvFile(filepath.Join(dir, "none"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Diarization.HFToken != "from-env" {
		t.Errorf("expected token from environment, got %q", cfg.Diarization.HFToken)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"), WithEnvFile("/nonexistent/.env"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yml", "name: [unterminated\n")

	var cfg testConfig
	if err := LoadConfig("meetnotes", &cfg, WithConfigFile(configPath)); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestLoadAppliesDefaultsAndValidates(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yml", "name: meetnotes\n")
	cfg, err := Load[ServiceConfig]("meetnotes", WithConfigFile(good), WithEnvFile(filepath.Join(dir, "none")))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Environment != "development" {
		t.Errorf("defaults not applied, environment = %q", cfg.Environment)
	}

	bad := writeFile(t, dir, "bad.yml", "environment: production\n")
	if _, err := Load[ServiceConfig]("meetnotes", WithConfigFile(bad), WithEnvFile(filepath.Join(dir, "none"))); err == nil {
		t.Fatal("expected validation error for missing name")
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolverSearchOrder(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/meetnotes/config.yml": true,
		"./config.yml":               true,
		"./.env.local":               true,
		"./.env":                     true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("meetnotes", LoaderConfig{})
	if files.ConfigFile != "./cmd/meetnotes/config.yml" {
		t.Errorf("expected cmd config to win, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env.local" {
		t.Errorf("expected .env.local to win, got %q", files.EnvFile)
	}
}

func TestResolverExplicitPaths(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{}}
	files := resolver.ResolveFiles("meetnotes", LoaderConfig{ConfigFile: "/etc/meet.yml", EnvFile: "/etc/meet.env"})
	if files.ConfigFile != "/etc/meet.yml" || files.EnvFile != "/etc/meet.env" {
		t.Errorf("explicit paths not honored: %+v", files)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("DIARIZATION_HF_TOKEN")
	for _, want := range []string{"diarization_hf_token", "diarization.hf.token", "diarization.hf_token"} {
		if !slices.Contains(got, want) {
			t.Errorf("expected variant %q in %v", want, got)
		}
	}
	if got := envKeyVariants("PORT"); len(got) != 1 || got[0] != "port" {
		t.Errorf("single-part key should map to itself, got %v", got)
	}
}
