package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             int           `envconfig:"PORT" default:"8080"`
	AllowedOrigins   string        `envconfig:"ALLOWED_ORIGINS" default:"localhost:5173,localhost:3000"`
	SessionSecret    string        `envconfig:"SESSION_SECRET" default:"dev-secret-change-in-production"`
	SessionTokenTTL  time.Duration `envconfig:"SESSION_TOKEN_TTL" default:"12h"`
	MDNSEnabled      bool          `envconfig:"MDNS_ENABLED" default:"false"`
	MDNSInstance     string        `envconfig:"MDNS_INSTANCE" default:"OmniSketch"`
	ExportBackground string        `envconfig:"EXPORT_BACKGROUND" default:"#fafafa"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.SlogLevel(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// OriginPatterns splits AllowedOrigins into host patterns for websocket
// origin checks. Schemes are stripped.
func (c *Config) OriginPatterns() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		o = strings.TrimSpace(o)
		o = strings.TrimPrefix(o, "https://")
		o = strings.TrimPrefix(o, "http://")
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	return lvl, nil
}
