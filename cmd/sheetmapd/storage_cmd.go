// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ManuGH/sheetmap/internal/config"
	"github.com/ManuGH/sheetmap/internal/mapping/store"
	"github.com/ManuGH/sheetmap/internal/persistence/sqlite"
)

func runStorageCLI(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printStorageUsage(stdout)
		return 0
	}

	switch args[0] {
	case "verify":
		return runStorageVerify(args[1:], stdout, stderr)
	default:
		_, _ = fmt.Fprintf(stderr, "Unknown subcommand: %s\n\n", args[0])
		printStorageUsage(stderr)
		return 2
	}
}

func printStorageUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  sheetmapd storage verify [--path PATH | --data-dir DIR] [--mode quick|full]")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "Flags:")
	_, _ = fmt.Fprintln(w, "  --path string      Path to a specific SQLite database file")
	_, _ = fmt.Fprintln(w, "  --data-dir string  Verify the profile database in DIR (default $SHEETMAP_DATA)")
	_, _ = fmt.Fprintln(w, "  --mode string      Verification mode: quick (default) or full")
}

func runStorageVerify(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sheetmapd storage verify", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var path, dataDir, mode string
	fs.StringVar(&path, "path", "", "Path to the SQLite database file")
	fs.StringVar(&dataDir, "data-dir", os.Getenv(config.EnvDataDir), "Data directory holding "+store.DBPath(""))
	fs.StringVar(&mode, "mode", sqlite.ModeQuick, "Verification mode: quick or full")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if path == "" {
		if strings.TrimSpace(dataDir) == "" {
			_, _ = fmt.Fprintln(stderr, "Error: --path or --data-dir (or $SHEETMAP_DATA) is required")
			return 2
		}
		path = store.DBPath(dataDir)
	}

	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode != sqlite.ModeQuick && mode != sqlite.ModeFull {
		_, _ = fmt.Fprintf(stderr, "Error: invalid mode %q. Use 'quick' or 'full'.\n", mode)
		return 2
	}

	if _, err := os.Stat(path); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	return doVerify(path, mode, stdout, stderr)
}

func doVerify(path, mode string, stdout, stderr io.Writer) int {
	_, _ = fmt.Fprintf(stderr, "Verifying %s (mode: %s)...\n", path, mode)

	rep, err := store.Verify(context.Background(), path, mode)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Verification interrupted by system error: %v\n", err)
		return 1
	}

	if !rep.OK() {
		_, _ = fmt.Fprintln(stderr, "VERIFICATION FAILED")
		for _, issue := range rep.Issues {
			_, _ = fmt.Fprintf(stderr, "  - %s\n", issue)
		}
		return 1
	}

	_, _ = fmt.Fprintf(stdout, "Integrity verified: ok (schema v%d, %d profiles)\n", rep.SchemaVersion, rep.Profiles)
	return 0
}
