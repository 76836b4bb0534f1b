// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ManuGH/sheetmap/internal/mapping/profilefile"
	"github.com/ManuGH/sheetmap/internal/mapping/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profilesYAML = `profiles:
  - id: asn
    name: ASN Bank
    delimiter: comma
    floatThousandsSep: none
    floatDecimalSep: dot
    timestampFormat: "%d-%m-%Y"
    timestampColumn: "0"
    headerRelabel: "0:Timestamp,10:Amount"
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(f func([]string, *bytes.Buffer, *bytes.Buffer) int, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := f(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func profileCLI(args []string, out, errOut *bytes.Buffer) int { return runProfileCLI(args, out, errOut) }
func storageCLI(args []string, out, errOut *bytes.Buffer) int { return runStorageCLI(args, out, errOut) }
func configCLI(args []string, out, errOut *bytes.Buffer) int  { return runConfigCLI(args, out, errOut) }

func TestProfileValidate(t *testing.T) {
	code, out, _ := run(profileCLI, "validate", writeTemp(t, "ok.yaml", profilesYAML))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "is valid (1 profiles)")

	bad := writeTemp(t, "bad.yaml", `profiles:
  - name: Broken
    floatThousandsSep: comma
    floatDecimalSep: comma
    timestampFormat: "%Y"
    timestampColumn: Date
`)
	code, _, errOut := run(profileCLI, "validate", bad)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "profiles[0] (Broken)")

	code, _, _ = run(profileCLI, "validate")
	assert.Equal(t, 2, code)
}

func TestProfileImportExport(t *testing.T) {
	dataDir := t.TempDir()
	in := writeTemp(t, "in.yaml", profilesYAML)

	code, out, errOut := run(profileCLI, "import", "--data-dir", dataDir, in)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "1 created, 0 updated")

	code, out, errOut = run(profileCLI, "import", "--data-dir", dataDir, in)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "0 created, 1 updated")

	outPath := filepath.Join(t.TempDir(), "out.yaml")
	code, out, errOut = run(profileCLI, "export", "--data-dir", dataDir, outPath)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Exported 1 profiles")

	exported, err := profilefile.Load(outPath)
	require.NoError(t, err)
	require.Len(t, exported, 1)
	assert.Equal(t, "asn", exported[0].ID)
	assert.Equal(t, "0:Timestamp,10:Amount", exported[0].HeaderRelabel)

	s, err := store.NewSqliteStore(store.DBPath(dataDir))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	p, err := s.Get(context.Background(), "asn")
	require.NoError(t, err)
	assert.Equal(t, "ASN Bank", p.Name)
}

func TestProfileImport_RequiresDataDir(t *testing.T) {
	t.Setenv("SHEETMAP_DATA", "")
	code, _, errOut := run(profileCLI, "import", writeTemp(t, "in.yaml", profilesYAML))
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "--data-dir")
}

func TestProfileCLI_Usage(t *testing.T) {
	code, out, _ := run(profileCLI)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "profile import")

	code, _, _ = run(profileCLI, "frobnicate")
	assert.Equal(t, 2, code)
}

func TestStorageVerify(t *testing.T) {
	dataDir := t.TempDir()
	s, err := store.NewStore(store.BackendSQLite, dataDir)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	code, out, errOut := run(storageCLI, "verify", "--data-dir", dataDir)
	assert.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Integrity verified")

	code, _, errOut = run(storageCLI, "verify", "--path", store.DBPath(dataDir), "--mode", "full")
	assert.Equal(t, 0, code, errOut)

	code, _, _ = run(storageCLI, "verify", "--path", store.DBPath(dataDir), "--mode", "deep")
	assert.Equal(t, 2, code)

	code, _, _ = run(storageCLI, "verify", "--path", filepath.Join(dataDir, "missing.sqlite"))
	assert.Equal(t, 2, code)

	t.Setenv("SHEETMAP_DATA", "")
	code, _, _ = run(storageCLI, "verify")
	assert.Equal(t, 2, code)
}

func TestConfigValidateAndDump(t *testing.T) {
	dataDir := t.TempDir()
	cfgPath := writeTemp(t, "config.yaml", "dataDir: "+dataDir+"\nlisten: \"127.0.0.1:9999\"\nstore:\n  backend: memory\n")

	code, out, errOut := run(configCLI, "validate", "-f", cfgPath)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "is valid")

	code, out, errOut = run(configCLI, "dump", "--file", cfgPath, "--format", "json")
	require.Equal(t, 0, code, errOut)
	var dumped map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &dumped))
	assert.Equal(t, "127.0.0.1:9999", dumped["listen"])
	assert.Equal(t, map[string]any{"backend": "memory"}, dumped["store"])
	assert.Equal(t, map[string]any{"enabled": false, "exporter": "grpc", "sampling": 1.0}, dumped["tracing"])

	code, out, errOut = run(configCLI, "dump", "--file", cfgPath)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "127.0.0.1:9999")

	bad := writeTemp(t, "bad.yaml", "listen: \":1\"\nbouquet: x\n")
	code, _, _ = run(configCLI, "validate", "-f", bad)
	assert.Equal(t, 1, code)

	code, _, _ = run(configCLI, "dump", "-f", cfgPath, "--format", "toml")
	assert.Equal(t, 2, code)
}
