// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mapping

// Delimiter is the column delimiter code stored on a profile.
type Delimiter string

const (
	DelimiterDot       Delimiter = "dot"
	DelimiterComma     Delimiter = "comma"
	DelimiterSemicolon Delimiter = "semicolon"
	DelimiterTab       Delimiter = "tab"
	DelimiterSpace     Delimiter = "space"
	// DelimiterNone tells the reader not to split columns at all.
	DelimiterNone Delimiter = "n/a"
)

var delimiterChars = map[Delimiter]rune{
	DelimiterDot:       '.',
	DelimiterComma:     ',',
	DelimiterSemicolon: ';',
	DelimiterTab:       '\t',
	DelimiterSpace:     ' ',
}

// Delimiters lists the accepted delimiter codes in display order.
func Delimiters() []Delimiter {
	return []Delimiter{
		DelimiterDot, DelimiterComma, DelimiterSemicolon,
		DelimiterTab, DelimiterSpace, DelimiterNone,
	}
}

// IsValid reports whether d is one of the accepted codes.
func (d Delimiter) IsValid() bool {
	if d == DelimiterNone {
		return true
	}
	_, ok := delimiterChars[d]
	return ok
}

// Label is the human readable name shown in the settings form.
func (d Delimiter) Label() string {
	switch d {
	case DelimiterDot:
		return "dot (.)"
	case DelimiterComma:
		return "comma (,)"
	case DelimiterSemicolon:
		return "semicolon (;)"
	case DelimiterTab:
		return "tab"
	case DelimiterSpace:
		return "space"
	case DelimiterNone:
		return "N/A"
	}
	return string(d)
}

// DecodeDelimiter maps a delimiter code to its character. The second return
// is false for "n/a" and for unknown codes, meaning no delimiter applies.
func DecodeDelimiter(code Delimiter) (rune, bool) {
	r, ok := delimiterChars[code]
	return r, ok
}
