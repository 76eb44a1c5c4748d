// SPDX-License-Identifier: Apache-2.0

// Package config loads the service configuration from YAML.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/bancoquestoes/qextract/internal/extraction"
)

// Config is the top-level service configuration.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	// AuthTokens lists accepted bearer tokens. When empty, the caller
	// identity is read from the header set by the upstream auth proxy.
	AuthTokens []string `yaml:"auth_tokens"`

	// TaxonomyPath replaces the embedded keyword taxonomy when set.
	TaxonomyPath string `yaml:"taxonomy_path"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Redis  RedisConfig  `yaml:"redis"`
	Limits LimitsConfig `yaml:"limits"`
}

// RedisConfig configures the optional response cache. The cache is
// disabled when Address is empty.
type RedisConfig struct {
	Address    string `yaml:"address"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// TTL returns the cache entry lifetime.
func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

// LimitsConfig bounds pipeline input and output.
type LimitsConfig struct {
	MinTextLength int `yaml:"min_text_length"`
	MaxTextLength int `yaml:"max_text_length"`
	MinScore      int `yaml:"min_score"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.defaults()
	return cfg
}

// Load reads the YAML file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.defaults()
	return &cfg, nil
}

func (c *Config) defaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.Redis.TTLSeconds <= 0 {
		c.Redis.TTLSeconds = 3600
	}
	if c.Limits.MinTextLength <= 0 {
		c.Limits.MinTextLength = extraction.DefaultMinTextLength
	}
	if c.Limits.MaxTextLength <= 0 {
		c.Limits.MaxTextLength = extraction.DefaultMaxTextLength
	}
	if c.Limits.MinScore <= 0 {
		c.Limits.MinScore = extraction.DefaultMinScore
	}
}

// PipelineConfig maps the limits onto an extraction.Config.
func (c *Config) PipelineConfig(logger *slog.Logger) extraction.Config {
	return extraction.Config{
		MinTextLength: c.Limits.MinTextLength,
		MaxTextLength: c.Limits.MaxTextLength,
		MinScore:      c.Limits.MinScore,
		Logger:        logger,
	}
}

// NewLogger builds a slog.Logger writing to w with the configured level
// and format ("text" or "json").
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
