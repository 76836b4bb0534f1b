// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mapping

import "fmt"

// Separator is the code stored for the thousands and decimal separators.
type Separator string

const (
	SeparatorDot   Separator = "dot"
	SeparatorComma Separator = "comma"
	SeparatorNone  Separator = "none"
)

var separatorSymbols = map[Separator]string{
	SeparatorDot:   ".",
	SeparatorComma: ",",
	SeparatorNone:  "",
}

// Separators lists the accepted separator codes in display order.
func Separators() []Separator {
	return []Separator{SeparatorDot, SeparatorComma, SeparatorNone}
}

// IsValid reports whether s is one of the accepted codes.
func (s Separator) IsValid() bool {
	_, ok := separatorSymbols[s]
	return ok
}

// Label is the human readable name shown in the settings form.
func (s Separator) Label() string {
	switch s {
	case SeparatorDot:
		return "dot (.)"
	case SeparatorComma:
		return "comma (,)"
	case SeparatorNone:
		return "none"
	}
	return string(s)
}

// Symbol returns the character the code stands for; none maps to "".
func (s Separator) Symbol() (string, error) {
	sym, ok := separatorSymbols[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSeparator, string(s))
	}
	return sym, nil
}

// AfterThousandsChange applies the correction run after the thousands
// separator was edited: when both fields hold dot the decimal separator
// becomes comma, when both hold comma it becomes dot. Every other pair,
// none/none included, is returned unchanged.
func AfterThousandsChange(thousands, decimal Separator) (Separator, Separator) {
	switch {
	case thousands == SeparatorDot && decimal == SeparatorDot:
		decimal = SeparatorComma
	case thousands == SeparatorComma && decimal == SeparatorComma:
		decimal = SeparatorDot
	}
	return thousands, decimal
}

// AfterDecimalChange is the mirror of AfterThousandsChange and adjusts the
// thousands separator instead.
func AfterDecimalChange(thousands, decimal Separator) (Separator, Separator) {
	switch {
	case thousands == SeparatorDot && decimal == SeparatorDot:
		thousands = SeparatorComma
	case thousands == SeparatorComma && decimal == SeparatorComma:
		thousands = SeparatorDot
	}
	return thousands, decimal
}
