// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mapping

// Selection is a set of profiles an operation is invoked on.
type Selection []*Profile

// EnsureOne returns the single profile of the selection, or
// ErrInvalidSelection when it holds zero or several (or a nil entry).
func (s Selection) EnsureOne() (*Profile, error) {
	if len(s) != 1 || s[0] == nil {
		return nil, ErrInvalidSelection
	}
	return s[0], nil
}

// FloatSeparators resolves the thousands and decimal symbols of the single
// selected profile.
func (s Selection) FloatSeparators() (thousands, decimal string, err error) {
	p, err := s.EnsureOne()
	if err != nil {
		return "", "", err
	}
	return p.FloatSeparators()
}

// FloatSeparators resolves the thousands and decimal separator codes to the
// symbols used when parsing amounts: dot is ".", comma is "," and none is "".
func (p *Profile) FloatSeparators() (thousands, decimal string, err error) {
	if p == nil {
		return "", "", ErrInvalidSelection
	}
	if thousands, err = p.ThousandsSeparator.Symbol(); err != nil {
		return "", "", err
	}
	if decimal, err = p.DecimalSeparator.Symbol(); err != nil {
		return "", "", err
	}
	return thousands, decimal, nil
}

// DelimiterChar resolves the profile's own delimiter code. The second
// return is false when no delimiter should be applied.
func (p *Profile) DelimiterChar() (rune, bool) {
	if p == nil {
		return 0, false
	}
	return DecodeDelimiter(p.Delimiter)
}
