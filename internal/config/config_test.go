package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `
api:
  base_url: http://localhost:8000
  timeout: 15s
session:
  path: session.db
log:
  level: info
  format: text
`

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("unexpected base url %q", cfg.API.BaseURL)
	}
	if cfg.RequestTimeout() != 15*time.Second {
		t.Errorf("unexpected timeout %v", cfg.RequestTimeout())
	}
	if cfg.Session.Path != "session.db" {
		t.Errorf("unexpected session path %q", cfg.Session.Path)
	}
}

func TestLoad_EnvOverlay(t *testing.T) {
	t.Setenv("FORUM__API__BASE_URL", "https://forum.example.com")
	t.Setenv("FORUM__LOG__LEVEL", "debug")

	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "https://forum.example.com" {
		t.Errorf("expected env override, got %q", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected env log level, got %q", cfg.Log.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing base url", func(c *Config) { c.API.BaseURL = "" }, true},
		{"relative base url", func(c *Config) { c.API.BaseURL = "localhost:8000" }, true},
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://host" }, true},
		{"bad timeout", func(c *Config) { c.API.Timeout = "sometime" }, true},
		{"negative timeout", func(c *Config) { c.API.Timeout = "-5s" }, true},
		{"missing session path", func(c *Config) { c.Session.Path = "" }, true},
		{"trailing slash trimmed", func(c *Config) { c.API.BaseURL = "http://host:1/" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				API:     APIConfig{BaseURL: "http://localhost:8000", Timeout: "30s"},
				Session: SessionConfig{Path: "session.db"},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_TrimsTrailingSlash(t *testing.T) {
	cfg := &Config{
		API:     APIConfig{BaseURL: "http://localhost:8000/"},
		Session: SessionConfig{Path: "s.db"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
}

func TestRequestTimeout_UnsetYieldsZero(t *testing.T) {
	cfg := &Config{}
	if cfg.RequestTimeout() != 0 {
		t.Errorf("expected zero timeout, got %v", cfg.RequestTimeout())
	}
}
