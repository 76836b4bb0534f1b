// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Command sheetmapd serves mapping profiles over HTTP and manages them from
// the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ManuGH/sheetmap/internal/config"
	"github.com/ManuGH/sheetmap/internal/daemon"
	xlog "github.com/ManuGH/sheetmap/internal/log"
	"github.com/ManuGH/sheetmap/internal/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "storage":
			os.Exit(runStorageCLI(os.Args[2:], os.Stdout, os.Stderr))
		case "profile":
			os.Exit(runProfileCLI(os.Args[2:], os.Stdout, os.Stderr))
		case "config":
			os.Exit(runConfigCLI(os.Args[2:], os.Stdout, os.Stderr))
		}
	}

	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Usage = func() { printUsage(flag.CommandLine.Output()) }
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	os.Exit(runDaemon(strings.TrimSpace(*configPath)))
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  sheetmapd [--config FILE] [--version]")
	_, _ = fmt.Fprintln(w, "  sheetmapd storage verify [--path PATH | --data-dir DIR] [--mode quick|full]")
	_, _ = fmt.Fprintln(w, "  sheetmapd profile import|export|validate FILE")
	_, _ = fmt.Fprintln(w, "  sheetmapd config validate|dump [--file FILE]")
}

func runDaemon(explicitConfigPath string) int {
	// Configure logger with safe defaults until config is loaded
	xlog.Configure(xlog.Config{
		Level:   "info",
		Service: config.DefaultLogService,
		Version: version.Version,
	})
	logger := xlog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configPath := explicitConfigPath
	if configPath == "" {
		configPath = resolveDefaultConfigPath()
	}

	cfg, err := config.NewLoader(configPath, version.Version).Load()
	if err != nil {
		logger.Error().
			Err(err).
			Str(xlog.FieldEvent, "config.load_failed").
			Str(xlog.FieldPath, configPath).
			Msg("failed to load configuration")
		return 1
	}

	xlog.Configure(xlog.Config{
		Level:   cfg.LogLevel,
		Service: cfg.LogService,
		Version: cfg.Version,
	})
	logger = xlog.WithComponent("daemon")

	source := "env+defaults"
	if configPath != "" {
		source = "file"
	}
	logger.Info().
		Str(xlog.FieldEvent, "config.loaded").
		Str("source", source).
		Str(xlog.FieldPath, configPath).
		Str("listen", cfg.ListenAddr).
		Str(xlog.FieldBackend, cfg.StoreBackend).
		Msg("configuration loaded")

	tracing, err := daemon.StartTracing(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Str(xlog.FieldEvent, "startup.failed").Msg("startup failed")
		return 1
	}
	defer func() {
		if err := tracing.Shutdown(context.Background()); err != nil {
			logger.Warn().Err(err).Str(xlog.FieldEvent, "tracing.shutdown_failed").Msg("failed to flush traces")
		}
	}()

	s, err := daemon.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Str(xlog.FieldEvent, "startup.failed").Msg("startup failed")
		return 1
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Warn().Err(err).Str(xlog.FieldEvent, "store.close_failed").Msg("failed to close profile store")
		}
	}()

	app, err := daemon.NewApp(cfg, s)
	if err != nil {
		logger.Error().Err(err).Str(xlog.FieldEvent, "startup.failed").Msg("startup failed")
		return 1
	}

	if err := app.Run(ctx); err != nil {
		logger.Error().Err(err).Str(xlog.FieldEvent, "daemon.failed").Msg("daemon stopped with error")
		return 1
	}
	logger.Info().Str(xlog.FieldEvent, "daemon.stopped").Msg("daemon stopped")
	return 0
}

// resolveDefaultConfigPath returns $SHEETMAP_DATA/config.yaml when it exists.
func resolveDefaultConfigPath() string {
	dataDir := strings.TrimSpace(os.Getenv(config.EnvDataDir))
	if dataDir == "" {
		return ""
	}
	autoPath := filepath.Join(dataDir, "config.yaml")
	if _, err := os.Stat(autoPath); err == nil {
		return autoPath
	}
	return ""
}
