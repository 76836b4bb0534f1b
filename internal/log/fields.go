// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID = "request_id"
	FieldProfileID = "profile_id"
	FieldProfile   = "profile_name"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Storage fields
	FieldBackend = "backend"
	FieldPath    = "path"
	FieldCount   = "count"

	// HTTP fields
	FieldMethod     = "method"
	FieldRoute      = "route"
	FieldStatus     = "status"
	FieldDurationMS = "duration_ms"
	FieldRemoteAddr = "remote_addr"
)
