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
	"github.com/ManuGH/sheetmap/internal/mapping/profilefile"
	"github.com/ManuGH/sheetmap/internal/mapping/store"
)

func runProfileCLI(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printProfileUsage(stdout)
		return 0
	}

	switch args[0] {
	case "validate":
		return runProfileValidate(args[1:], stdout, stderr)
	case "import":
		return runProfileImport(args[1:], stdout, stderr)
	case "export":
		return runProfileExport(args[1:], stdout, stderr)
	default:
		_, _ = fmt.Fprintf(stderr, "Unknown subcommand: %s\n\n", args[0])
		printProfileUsage(stderr)
		return 2
	}
}

func printProfileUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  sheetmapd profile validate FILE")
	_, _ = fmt.Fprintln(w, "  sheetmapd profile import [--data-dir DIR] FILE")
	_, _ = fmt.Fprintln(w, "  sheetmapd profile export [--data-dir DIR] FILE")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "FILE is a YAML document with a top-level 'profiles' list.")
	_, _ = fmt.Fprintln(w, "DIR defaults to $SHEETMAP_DATA.")
}

// parseProfileArgs parses the common [--data-dir DIR] FILE form.
func parseProfileArgs(name string, args []string, withDataDir bool, stderr io.Writer) (dataDir, file string, ok bool) {
	fs := flag.NewFlagSet("sheetmapd profile "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	if withDataDir {
		fs.StringVar(&dataDir, "data-dir", os.Getenv(config.EnvDataDir), "data directory of the profile store")
	}
	if err := fs.Parse(args); err != nil {
		return "", "", false
	}
	if fs.NArg() != 1 {
		_, _ = fmt.Fprintf(stderr, "Error: sheetmapd profile %s expects exactly one FILE argument\n", name)
		return "", "", false
	}
	if withDataDir && strings.TrimSpace(dataDir) == "" {
		_, _ = fmt.Fprintln(stderr, "Error: --data-dir (or $SHEETMAP_DATA) is required")
		return "", "", false
	}
	return dataDir, fs.Arg(0), true
}

func runProfileValidate(args []string, stdout, stderr io.Writer) int {
	_, file, ok := parseProfileArgs("validate", args, false, stderr)
	if !ok {
		return 2
	}

	profiles, err := profilefile.Load(file)
	if err == nil {
		err = profilefile.Check(profiles)
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Profile error in %s:\n  %v\n", file, err)
		return 1
	}
	_, _ = fmt.Fprintf(stdout, "%s is valid (%d profiles)\n", file, len(profiles))
	return 0
}

func runProfileImport(args []string, stdout, stderr io.Writer) int {
	dataDir, file, ok := parseProfileArgs("import", args, true, stderr)
	if !ok {
		return 2
	}

	s, err := store.NewStore(store.BackendSQLite, dataDir)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = s.Close() }()

	res, err := profilefile.Sync(context.Background(), s, file)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Import of %s failed:\n  %v\n", file, err)
		return 1
	}
	_, _ = fmt.Fprintf(stdout, "Imported %s: %d created, %d updated\n", file, res.Created, res.Updated)
	return 0
}

func runProfileExport(args []string, stdout, stderr io.Writer) int {
	dataDir, file, ok := parseProfileArgs("export", args, true, stderr)
	if !ok {
		return 2
	}

	s, err := store.NewStore(store.BackendSQLite, dataDir)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = s.Close() }()

	n, err := profilefile.Export(context.Background(), s, file)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Export to %s failed:\n  %v\n", file, err)
		return 1
	}
	_, _ = fmt.Fprintf(stdout, "Exported %d profiles to %s\n", n, file)
	return 0
}
