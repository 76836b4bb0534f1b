// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ManuGH/sheetmap/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader("", "v1.2.3").Load()
	require.NoError(t, err)

	assert.Equal(t, "v1.2.3", cfg.Version)
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, "sqlite", cfg.StoreBackend)
	assert.Empty(t, cfg.DataDir)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, DefaultRateLimitRPM, cfg.RateLimitRPM)
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.False(t, cfg.ProfilesWatch)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dataDir := t.TempDir()
	path := writeConfig(t, `
dataDir: `+dataDir+`
listen: "127.0.0.1:9000"
log:
  level: debug
store:
  backend: memory
profiles:
  file: /etc/sheetmap/profiles.yaml
  watch: true
rateLimit:
  enabled: false
  rpm: 30
shutdownTimeout: 3s
`)

	cfg, err := NewLoader(path, "").Load()
	require.NoError(t, err)
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, "/etc/sheetmap/profiles.yaml", cfg.ProfilesFile)
	assert.True(t, cfg.ProfilesWatch)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, 30, cfg.RateLimitRPM)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)

	t.Setenv(EnvListen, ":7000")
	t.Setenv(EnvRateLimitEnabled, "true")
	t.Setenv(EnvShutdownTimeout, "20s")

	cfg, err = NewLoader(path, "").Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, 20*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "memory", cfg.StoreBackend)
}

func TestLoad_Tracing(t *testing.T) {
	cfg, err := NewLoader("", "").Load()
	require.NoError(t, err)
	assert.False(t, cfg.TracingEnabled)
	assert.Equal(t, DefaultTracingExporter, cfg.TracingExporter)
	assert.InDelta(t, DefaultTracingSampling, cfg.TracingSampling, 1e-9)

	path := writeConfig(t, `
tracing:
  enabled: true
  exporter: http
  endpoint: collector:4318
  sampling: 0.5
`)
	cfg, err = NewLoader(path, "").Load()
	require.NoError(t, err)
	assert.True(t, cfg.TracingEnabled)
	assert.Equal(t, "http", cfg.TracingExporter)
	assert.Equal(t, "collector:4318", cfg.TracingEndpoint)
	assert.InDelta(t, 0.5, cfg.TracingSampling, 1e-9)

	t.Setenv(EnvTracingEnabled, "false")
	t.Setenv(EnvTracingSampling, "0.1")
	cfg, err = NewLoader(path, "").Load()
	require.NoError(t, err)
	assert.False(t, cfg.TracingEnabled)
	assert.InDelta(t, 0.1, cfg.TracingSampling, 1e-9)
}

func TestLoadFile_Strict(t *testing.T) {
	tests := map[string]string{
		"unknown key":       "listen: \":1\"\nbouquet: Favourites\n",
		"unknown nested":    "log:\n  colour: true\n",
		"two documents":     "listen: \":1\"\n---\nlisten: \":2\"\n",
		"wrong scalar type": "rateLimit:\n  rpm: lots\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_Empty(t *testing.T) {
	f, err := LoadFile(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, &FileConfig{}, f)
}

func TestLoad_BadDuration(t *testing.T) {
	_, err := NewLoader(writeConfig(t, "shutdownTimeout: soon\n"), "").Load()
	assert.ErrorContains(t, err, "shutdownTimeout")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
		field  string
	}{
		{"bad listen", func(c *AppConfig) { c.ListenAddr = "nope" }, "ListenAddr"},
		{"bad log level", func(c *AppConfig) { c.LogLevel = "loud" }, "LogLevel"},
		{"bad backend", func(c *AppConfig) { c.StoreBackend = "badger" }, "StoreBackend"},
		{"watch without file", func(c *AppConfig) { c.ProfilesWatch = true }, "ProfilesWatch"},
		{"zero rpm", func(c *AppConfig) { c.RateLimitRPM = 0 }, "RateLimitRPM"},
		{"zero shutdown", func(c *AppConfig) { c.ShutdownTimeout = 0 }, "ShutdownTimeout"},
		{"tracing exporter", func(c *AppConfig) { c.TracingEnabled = true; c.TracingExporter = "zipkin" }, "TracingExporter"},
		{"tracing sampling", func(c *AppConfig) { c.TracingEnabled = true; c.TracingSampling = 1.5 }, "TracingSampling"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			ve, ok := validate.AsValidationError(err)
			require.True(t, ok, "expected validation error, got %v", err)
			require.Len(t, ve.Errors(), 1)
			assert.Equal(t, tt.field, ve.Errors()[0].Field)
		})
	}

	cfg := Defaults()
	cfg.RateLimitEnabled = false
	cfg.RateLimitRPM = 0
	assert.NoError(t, Validate(cfg))
}
