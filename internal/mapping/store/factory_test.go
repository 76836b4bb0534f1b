// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_DefaultsToSqlite(t *testing.T) {
	// Empty dir → memory
	s, err := NewStore("", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	dir := t.TempDir()
	s2, err := NewStore("", dir)
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()
	assert.IsType(t, &SqliteStore{}, s2)

	_, err = os.Stat(filepath.Join(dir, "profiles.sqlite"))
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "profiles.sqlite"), DBPath(dir))
}

func TestNewStore_ExplicitBackends(t *testing.T) {
	s, err := NewStore(" Memory ", t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s2, err := NewStore("sqlite", t.TempDir())
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()
	assert.IsType(t, &SqliteStore{}, s2)
}

func TestNewStore_RejectsUnknownBackend(t *testing.T) {
	s, err := NewStore("badger", t.TempDir())
	require.Error(t, err)
	assert.Nil(t, s)
	assert.Contains(t, err.Error(), "unknown profile store backend: badger")
}
