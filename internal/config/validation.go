// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"strings"

	"github.com/ManuGH/sheetmap/internal/validate"
)

// Validate validates an AppConfig using the centralized validation package.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.ListenAddr("ListenAddr", cfg.ListenAddr)
	if _, err := validate.ParseLogLevel(strings.ToLower(cfg.LogLevel)); err != nil {
		v.AddError("LogLevel", err.Error(), cfg.LogLevel)
	}
	v.OneOf("StoreBackend", strings.ToLower(strings.TrimSpace(cfg.StoreBackend)), []string{"", "sqlite", "memory"})

	if cfg.DataDir != "" {
		v.Directory("DataDir", cfg.DataDir, false)
	}
	if cfg.ProfilesWatch && cfg.ProfilesFile == "" {
		v.AddError("ProfilesWatch", "requires ProfilesFile", cfg.ProfilesWatch)
	}
	if cfg.RateLimitEnabled {
		v.Positive("RateLimitRPM", cfg.RateLimitRPM)
	}
	if cfg.TracingEnabled {
		v.OneOf("TracingExporter", strings.ToLower(cfg.TracingExporter), []string{"grpc", "http"})
		if cfg.TracingSampling < 0 || cfg.TracingSampling > 1 {
			v.AddError("TracingSampling", "must be between 0 and 1", cfg.TracingSampling)
		}
	}
	if cfg.ShutdownTimeout <= 0 {
		v.AddError("ShutdownTimeout", "must be positive", cfg.ShutdownTimeout.String())
	}

	return v.Err()
}
