// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package mapping

// OnThousandsSeparatorChanged must be called after the thousands separator
// was edited. It moves the decimal separator off a colliding dot or comma and
// reports whether it changed anything.
func OnThousandsSeparatorChanged(p *Profile) bool {
	if p == nil {
		return false
	}
	_, dec := AfterThousandsChange(p.ThousandsSeparator, p.DecimalSeparator)
	if dec == p.DecimalSeparator {
		return false
	}
	p.DecimalSeparator = dec
	return true
}

// OnDecimalSeparatorChanged must be called after the decimal separator was
// edited. It moves the thousands separator off a colliding dot or comma and
// reports whether it changed anything.
func OnDecimalSeparatorChanged(p *Profile) bool {
	if p == nil {
		return false
	}
	th, _ := AfterDecimalChange(p.ThousandsSeparator, p.DecimalSeparator)
	if th == p.ThousandsSeparator {
		return false
	}
	p.ThousandsSeparator = th
	return true
}
