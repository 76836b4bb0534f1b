// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package daemon wires configuration, storage, the profile file and the HTTP
// API into one runtime.
package daemon

import (
	"context"
	"fmt"

	"github.com/ManuGH/sheetmap/internal/config"
	xlog "github.com/ManuGH/sheetmap/internal/log"
	"github.com/ManuGH/sheetmap/internal/mapping/profilefile"
	"github.com/ManuGH/sheetmap/internal/mapping/store"
	"github.com/ManuGH/sheetmap/internal/metrics"
	"github.com/ManuGH/sheetmap/internal/telemetry"
)

// StartTracing installs the OpenTelemetry tracer provider for cfg. The
// returned provider must be shut down to flush pending spans.
func StartTracing(ctx context.Context, cfg config.AppConfig) (*telemetry.Provider, error) {
	p, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.TracingEnabled,
		ServiceName:    cfg.LogService,
		ServiceVersion: cfg.Version,
		ExporterType:   cfg.TracingExporter,
		Endpoint:       cfg.TracingEndpoint,
		SamplingRate:   cfg.TracingSampling,
	})
	if err != nil {
		return nil, fmt.Errorf("start tracing: %w", err)
	}
	if p.Enabled() {
		xlog.WithComponent("daemon").Info().
			Str(xlog.FieldEvent, "tracing.started").
			Str("exporter", cfg.TracingExporter).
			Str("endpoint", cfg.TracingEndpoint).
			Float64("sampling", cfg.TracingSampling).
			Msg("OpenTelemetry tracing enabled")
	}
	return p, nil
}

// OpenStore opens the configured profile store and, when a profiles file is
// configured, syncs it in. A failed sync closes the store again.
func OpenStore(ctx context.Context, cfg config.AppConfig) (store.Store, error) {
	logger := xlog.WithComponent("daemon")

	s, err := store.NewStore(cfg.StoreBackend, cfg.DataDir)
	if err != nil {
		logger.Error().Err(err).
			Str(xlog.FieldEvent, "store.open_failed").
			Str(xlog.FieldBackend, cfg.StoreBackend).
			Msg("failed to open profile store")
		return nil, fmt.Errorf("open profile store: %w", err)
	}
	logger.Info().
		Str(xlog.FieldEvent, "store.opened").
		Str(xlog.FieldBackend, cfg.StoreBackend).
		Str(xlog.FieldPath, cfg.DataDir).
		Msg("profile store ready")

	if cfg.ProfilesFile != "" {
		res, err := profilefile.Sync(ctx, s, cfg.ProfilesFile)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("sync profiles file %s: %w", cfg.ProfilesFile, err)
		}
		recordSync(res)
		logger.Info().
			Str(xlog.FieldEvent, "profilefile.synced").
			Str(xlog.FieldPath, cfg.ProfilesFile).
			Int("created", res.Created).
			Int("updated", res.Updated).
			Msg("profiles file synced")
	}

	if all, err := s.List(ctx); err == nil {
		metrics.SetProfilesTotal(len(all))
	}
	return s, nil
}

func recordSync(res profilefile.SyncResult) {
	metrics.RecordProfileWrite(metrics.OpSync, res.Created+res.Updated)
}
