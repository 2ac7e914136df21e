package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level client configuration.
type Config struct {
	API     APIConfig     `koanf:"api"`
	Session SessionConfig `koanf:"session"`
	Log     LogConfig     `koanf:"log"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL   string `koanf:"base_url"`
	Timeout   string `koanf:"timeout"`
	UserAgent string `koanf:"user_agent"`
}

// SessionConfig holds session persistence settings.
type SessionConfig struct {
	Path string `koanf:"path"`
}

// LogConfig holds logging settings. The optional log file is pruned by
// age; short CLI sessions never need size-based rotation.
type LogConfig struct {
	Level         string `koanf:"level"`
	Format        string `koanf:"format"`
	Color         *bool  `koanf:"color"`
	FilePath      string `koanf:"file_path"`
	RetentionDays int    `koanf:"retention_days"`
}

// Load reads configuration from a YAML file and overlays environment
// variables. Environment variables use the prefix "FORUM__" and
// double-underscore as the hierarchy separator; single underscores stay part
// of the key name. For example, FORUM__API__BASE_URL overrides api.base_url.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	if err := k.Load(env.Provider("FORUM__", ".", func(s string) string {
		key := strings.TrimPrefix(s, "FORUM__")
		key = strings.ToLower(key)
		key = strings.ReplaceAll(key, "__", ".")
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required fields and value constraints.
func (c *Config) Validate() error {
	base := strings.TrimSpace(c.API.BaseURL)
	if base == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(base)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid api.base_url %q: must be an absolute http(s) URL", c.API.BaseURL)
	}
	c.API.BaseURL = strings.TrimRight(base, "/")

	if t := strings.TrimSpace(c.API.Timeout); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid api.timeout %q: must be positive", c.API.Timeout)
		}
		c.API.Timeout = t
	}

	path := strings.TrimSpace(c.Session.Path)
	if path == "" {
		return fmt.Errorf("session.path is required")
	}
	c.Session.Path = path

	return nil
}

// RequestTimeout returns the parsed API timeout, or zero when unset so the
// transport applies its default.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.API.Timeout))
	if err != nil {
		return 0
	}
	return d
}
