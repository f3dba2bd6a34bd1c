package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 12*time.Hour, cfg.SessionTokenTTL)
	assert.False(t, cfg.MDNSEnabled)
	assert.Equal(t, "OmniSketch", cfg.MDNSInstance)
	assert.Equal(t, "#fafafa", cfg.ExportBackground)
	assert.Equal(t, []string{"localhost:5173", "localhost:3000"}, cfg.OriginPatterns())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MDNS_ENABLED", "true")
	t.Setenv("SESSION_TOKEN_TTL", "30m")
	t.Setenv("ALLOWED_ORIGINS", "https://board.example.com, http://localhost:5173 ,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.MDNSEnabled)
	assert.Equal(t, 30*time.Minute, cfg.SessionTokenTTL)
	assert.Equal(t, []string{"board.example.com", "localhost:5173"}, cfg.OriginPatterns())

	lvl, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("port", func(t *testing.T) {
		t.Setenv("PORT", "eighty")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "chatty")
		_, err := Load()
		assert.Error(t, err)
	})
}
