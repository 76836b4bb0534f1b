// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

// Defaults.
const (
	DefaultListenAddr      = ":8088"
	DefaultLogLevel        = "info"
	DefaultLogService      = "sheetmapd"
	DefaultRateLimitRPM    = 600
	DefaultShutdownTimeout = 10 * time.Second
	DefaultTracingExporter = "grpc"
	DefaultTracingSampling = 1.0
)

// AppConfig is the effective runtime configuration.
type AppConfig struct {
	Version string

	DataDir    string
	ListenAddr string
	LogLevel   string
	LogService string

	// StoreBackend is "sqlite" (default) or "memory".
	StoreBackend string

	// ProfilesFile is an optional YAML file synced into the store at startup.
	ProfilesFile  string
	ProfilesWatch bool

	RateLimitEnabled bool
	RateLimitRPM     int

	ShutdownTimeout time.Duration

	// Tracing exports OpenTelemetry spans over OTLP. An empty endpoint
	// defers to the OTEL_EXPORTER_OTLP_* environment variables.
	TracingEnabled  bool
	TracingExporter string
	TracingEndpoint string
	TracingSampling float64
}

// FileConfig is the YAML layout. Pointer fields distinguish unset from zero.
type FileConfig struct {
	DataDir   string          `yaml:"dataDir,omitempty" json:"dataDir,omitempty"`
	Listen    string          `yaml:"listen,omitempty" json:"listen,omitempty"`
	Log       LogConfig       `yaml:"log,omitempty" json:"log,omitempty"`
	Store     StoreConfig     `yaml:"store,omitempty" json:"store,omitempty"`
	Profiles  ProfilesConfig  `yaml:"profiles,omitempty" json:"profiles,omitempty"`
	RateLimit RateLimitConfig `yaml:"rateLimit,omitempty" json:"rateLimit,omitempty"`
	Tracing   TracingConfig   `yaml:"tracing,omitempty" json:"tracing,omitempty"`
	// ShutdownTimeout uses Go duration syntax, e.g. "15s".
	ShutdownTimeout string `yaml:"shutdownTimeout,omitempty" json:"shutdownTimeout,omitempty"`
}

type LogConfig struct {
	Level   string `yaml:"level,omitempty" json:"level,omitempty"`
	Service string `yaml:"service,omitempty" json:"service,omitempty"`
}

type StoreConfig struct {
	Backend string `yaml:"backend,omitempty" json:"backend,omitempty"`
}

type ProfilesConfig struct {
	File  string `yaml:"file,omitempty" json:"file,omitempty"`
	Watch *bool  `yaml:"watch,omitempty" json:"watch,omitempty"`
}

type RateLimitConfig struct {
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	RPM     *int  `yaml:"rpm,omitempty" json:"rpm,omitempty"`
}

type TracingConfig struct {
	Enabled  *bool    `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Exporter string   `yaml:"exporter,omitempty" json:"exporter,omitempty"`
	Endpoint string   `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	Sampling *float64 `yaml:"sampling,omitempty" json:"sampling,omitempty"`
}
