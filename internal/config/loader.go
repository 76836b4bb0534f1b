// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles configuration loading with precedence.
type Loader struct {
	configPath string
	version    string
}

// NewLoader creates a new configuration loader. configPath may be empty.
func NewLoader(configPath, version string) *Loader {
	return &Loader{configPath: configPath, version: version}
}

// Load loads configuration with precedence: ENV > File > Defaults, then
// validates the result.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		fileCfg, err := LoadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		if err := mergeFile(&cfg, fileCfg); err != nil {
			return cfg, fmt.Errorf("merge file config: %w", err)
		}
	}

	mergeEnv(&cfg)

	if cfg.DataDir != "" {
		if abs, err := filepath.Abs(cfg.DataDir); err == nil {
			cfg.DataDir = abs
		}
	}
	cfg.Version = l.version

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		ListenAddr:       DefaultListenAddr,
		LogLevel:         DefaultLogLevel,
		LogService:       DefaultLogService,
		StoreBackend:     "sqlite",
		RateLimitEnabled: true,
		RateLimitRPM:     DefaultRateLimitRPM,
		ShutdownTimeout:  DefaultShutdownTimeout,
		TracingExporter:  DefaultTracingExporter,
		TracingSampling:  DefaultTracingSampling,
	}
}

// LoadFile decodes a YAML config file without applying defaults or env.
func LoadFile(path string) (*FileConfig, error) {
	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return &fileCfg, nil
}

func mergeFile(cfg *AppConfig, f *FileConfig) error {
	if f.DataDir != "" {
		cfg.DataDir = os.ExpandEnv(f.DataDir)
	}
	if f.Listen != "" {
		cfg.ListenAddr = f.Listen
	}
	if f.Log.Level != "" {
		cfg.LogLevel = f.Log.Level
	}
	if f.Log.Service != "" {
		cfg.LogService = f.Log.Service
	}
	if f.Store.Backend != "" {
		cfg.StoreBackend = f.Store.Backend
	}
	if f.Profiles.File != "" {
		cfg.ProfilesFile = os.ExpandEnv(f.Profiles.File)
	}
	if f.Profiles.Watch != nil {
		cfg.ProfilesWatch = *f.Profiles.Watch
	}
	if f.RateLimit.Enabled != nil {
		cfg.RateLimitEnabled = *f.RateLimit.Enabled
	}
	if f.RateLimit.RPM != nil {
		cfg.RateLimitRPM = *f.RateLimit.RPM
	}
	if f.Tracing.Enabled != nil {
		cfg.TracingEnabled = *f.Tracing.Enabled
	}
	if f.Tracing.Exporter != "" {
		cfg.TracingExporter = f.Tracing.Exporter
	}
	if f.Tracing.Endpoint != "" {
		cfg.TracingEndpoint = os.ExpandEnv(f.Tracing.Endpoint)
	}
	if f.Tracing.Sampling != nil {
		cfg.TracingSampling = *f.Tracing.Sampling
	}
	if f.ShutdownTimeout != "" {
		d, err := time.ParseDuration(f.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("shutdownTimeout: %w", err)
		}
		cfg.ShutdownTimeout = d
	}
	return nil
}

func mergeEnv(cfg *AppConfig) {
	cfg.DataDir = ParseString(EnvDataDir, cfg.DataDir)
	cfg.ListenAddr = ParseString(EnvListen, cfg.ListenAddr)
	cfg.LogLevel = ParseString(EnvLogLevel, cfg.LogLevel)
	cfg.LogService = ParseString(EnvLogService, cfg.LogService)
	cfg.StoreBackend = ParseString(EnvStoreBackend, cfg.StoreBackend)
	cfg.ProfilesFile = ParseString(EnvProfilesFile, cfg.ProfilesFile)
	cfg.ProfilesWatch = ParseBool(EnvProfilesWatch, cfg.ProfilesWatch)
	cfg.RateLimitEnabled = ParseBool(EnvRateLimitEnabled, cfg.RateLimitEnabled)
	cfg.RateLimitRPM = ParseInt(EnvRateLimitRPM, cfg.RateLimitRPM)
	cfg.ShutdownTimeout = ParseDuration(EnvShutdownTimeout, cfg.ShutdownTimeout)
	cfg.TracingEnabled = ParseBool(EnvTracingEnabled, cfg.TracingEnabled)
	cfg.TracingExporter = ParseString(EnvTracingExporter, cfg.TracingExporter)
	cfg.TracingEndpoint = ParseString(EnvTracingEndpoint, cfg.TracingEndpoint)
	cfg.TracingSampling = ParseFloat(EnvTracingSampling, cfg.TracingSampling)
}
