// SPDX-License-Identifier: MIT

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		envSet   bool
		want     string
	}{
		{name: "environment variable set", envValue: "from-env", envSet: true, want: "from-env"},
		{name: "environment variable not set", want: "default"},
		{name: "environment variable empty string", envValue: "", envSet: true, want: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envSet {
				t.Setenv("SHEETMAP_TEST_STRING", tt.envValue)
			}
			assert.Equal(t, tt.want, ParseString("SHEETMAP_TEST_STRING", "default"))
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		envSet   bool
		want     int
	}{
		{name: "valid integer", envValue: "42", envSet: true, want: 42},
		{name: "surrounding space", envValue: " 7 ", envSet: true, want: 7},
		{name: "invalid integer falls back", envValue: "many", envSet: true, want: 10},
		{name: "unset", want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envSet {
				t.Setenv("SHEETMAP_TEST_INT", tt.envValue)
			}
			assert.Equal(t, tt.want, ParseInt("SHEETMAP_TEST_INT", 10))
		})
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		envValue string
		want     bool
	}{
		{"true", true},
		{"YES", true},
		{"1", true},
		{"false", false},
		{"no", false},
		{"0", false},
		{"maybe", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.envValue, func(t *testing.T) {
			t.Setenv("SHEETMAP_TEST_BOOL", tt.envValue)
			assert.Equal(t, tt.want, ParseBool("SHEETMAP_TEST_BOOL", true))
		})
	}
}

func TestParseDuration(t *testing.T) {
	t.Setenv("SHEETMAP_TEST_DUR", "1m30s")
	assert.Equal(t, 90*time.Second, ParseDuration("SHEETMAP_TEST_DUR", time.Second))

	t.Setenv("SHEETMAP_TEST_DUR", "soon")
	assert.Equal(t, time.Second, ParseDuration("SHEETMAP_TEST_DUR", time.Second))
}

func TestParseFloat(t *testing.T) {
	t.Setenv("SHEETMAP_TEST_FLOAT", " 0.25 ")
	assert.InDelta(t, 0.25, ParseFloat("SHEETMAP_TEST_FLOAT", 1), 1e-9)

	t.Setenv("SHEETMAP_TEST_FLOAT", "half")
	assert.InDelta(t, 1.0, ParseFloat("SHEETMAP_TEST_FLOAT", 1), 1e-9)
}
