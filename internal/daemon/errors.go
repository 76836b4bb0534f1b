// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import "errors"

var (
	// ErrMissingStore is returned when an app is created without a profile store.
	ErrMissingStore = errors.New("profile store is required")

	// ErrServerStartFailed is returned when the HTTP listener cannot be opened.
	ErrServerStartFailed = errors.New("server failed to start")
)
