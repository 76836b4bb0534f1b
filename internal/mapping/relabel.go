// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mapping

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHeaderRelabel parses the "index:label" list stored in HeaderRelabel,
// e.g. "0:Timestamp,12:DebitCredit". Blank entries are skipped; an empty
// string yields an empty map. Labels keep inner spaces and are trimmed.
func ParseHeaderRelabel(s string) (map[int]string, error) {
	out := make(map[int]string)
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		idx, label, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("%w: entry %q has no ':'", ErrInvalidRelabel, entry)
		}
		n, err := strconv.Atoi(strings.TrimSpace(idx))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: entry %q has no valid column index", ErrInvalidRelabel, entry)
		}
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, fmt.Errorf("%w: entry %q has an empty label", ErrInvalidRelabel, entry)
		}
		out[n] = label
	}
	return out, nil
}
