// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ManuGH/sheetmap/internal/config"
	"github.com/ManuGH/sheetmap/internal/version"
	"gopkg.in/yaml.v3"
)

func runConfigCLI(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printConfigUsage(stdout)
		return 0
	}

	switch args[0] {
	case "validate":
		return runConfigValidate(args[1:], stdout, stderr)
	case "dump":
		return runConfigDump(args[1:], stdout, stderr)
	default:
		_, _ = fmt.Fprintf(stderr, "Unknown subcommand: %s\n\n", args[0])
		printConfigUsage(stderr)
		return 2
	}
}

func printConfigUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  sheetmapd config validate [--file|-f config.yaml]")
	_, _ = fmt.Fprintln(w, "  sheetmapd config dump [--file|-f config.yaml] [--format=yaml|json]")
}

func configFlagSet(name string, stderr io.Writer, file *string) *flag.FlagSet {
	fs := flag.NewFlagSet("sheetmapd config "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(file, "file", "", "path to YAML configuration file")
	fs.StringVar(file, "f", "", "path to YAML configuration file (shorthand)")
	return fs
}

func runConfigValidate(args []string, stdout, stderr io.Writer) int {
	var file string
	fs := configFlagSet("validate", stderr, &file)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	configPath := strings.TrimSpace(file)
	if configPath == "" {
		configPath = resolveDefaultConfigPath()
	}

	if _, err := config.NewLoader(configPath, version.Version).Load(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Configuration error in %s:\n  %v\n", describeSource(configPath), err)
		return 1
	}

	_, _ = fmt.Fprintf(stdout, "%s is valid\n", describeSource(configPath))
	return 0
}

// runConfigDump prints the effective configuration (defaults + file + env)
// in the YAML file layout.
func runConfigDump(args []string, stdout, stderr io.Writer) int {
	var file, format string
	fs := configFlagSet("dump", stderr, &file)
	fs.StringVar(&format, "format", "yaml", "output format: yaml or json")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	configPath := strings.TrimSpace(file)
	if configPath == "" {
		configPath = resolveDefaultConfigPath()
	}

	cfg, err := config.NewLoader(configPath, version.Version).Load()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Configuration error in %s:\n  %v\n", describeSource(configPath), err)
		return 1
	}
	fileCfg := fileConfigFromAppConfig(cfg)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(fileCfg); err != nil {
			_, _ = fmt.Fprintf(stderr, "Failed to encode YAML: %v\n", err)
			return 1
		}
		_ = enc.Close()
		return 0
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fileCfg); err != nil {
			_, _ = fmt.Fprintf(stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "Unsupported format: %s (use yaml or json)\n", format)
		return 2
	}
}

func describeSource(configPath string) string {
	if configPath == "" {
		return "environment and defaults"
	}
	return configPath
}

func fileConfigFromAppConfig(cfg config.AppConfig) config.FileConfig {
	watch := cfg.ProfilesWatch
	rlEnabled := cfg.RateLimitEnabled
	rpm := cfg.RateLimitRPM
	tracing := cfg.TracingEnabled
	sampling := cfg.TracingSampling

	return config.FileConfig{
		DataDir: cfg.DataDir,
		Listen:  cfg.ListenAddr,
		Log: config.LogConfig{
			Level:   cfg.LogLevel,
			Service: cfg.LogService,
		},
		Store: config.StoreConfig{Backend: cfg.StoreBackend},
		Profiles: config.ProfilesConfig{
			File:  cfg.ProfilesFile,
			Watch: &watch,
		},
		RateLimit: config.RateLimitConfig{
			Enabled: &rlEnabled,
			RPM:     &rpm,
		},
		Tracing: config.TracingConfig{
			Enabled:  &tracing,
			Exporter: cfg.TracingExporter,
			Endpoint: cfg.TracingEndpoint,
			Sampling: &sampling,
		},
		ShutdownTimeout: cfg.ShutdownTimeout.String(),
	}
}
