// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mapping

import "errors"

var (
	// ErrInvalidSelection is returned when an operation that needs exactly
	// one profile is invoked on zero or several.
	ErrInvalidSelection = errors.New("expected exactly one mapping profile")

	// ErrUnknownSeparator classifies separator codes outside {dot, comma, none}.
	ErrUnknownSeparator = errors.New("unknown separator code")

	// ErrUnknownEncoding classifies file encodings outside the supported set.
	ErrUnknownEncoding = errors.New("unknown file encoding")

	// ErrInvalidRelabel is returned by ParseHeaderRelabel for malformed input.
	ErrInvalidRelabel = errors.New("invalid header relabel")
)
