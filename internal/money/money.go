// Package money converts between two-decimal JSON amounts and the int64
// minor units (cents) every store works with, so arithmetic stays exact.
package money

import (
	"math"

	"github.com/financia-ai/financia/internal/apperr"
)

// maxCents bounds amounts to one trillion currency units in either
// direction. Past that, float64 no longer resolves individual cents and an
// int64 conversion could overflow.
const maxCents = 1e14

// ToCents converts a two-decimal amount to minor units. Values with more
// precision than cents, NaN, infinities and out-of-range magnitudes are
// rejected.
func ToCents(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, apperr.Validationf("amount must be a finite number")
	}
	scaled := amount * 100
	cents := math.Round(scaled)
	if math.Abs(cents) > maxCents {
		return 0, apperr.Validationf("amount is out of range")
	}
	if math.Abs(scaled-cents) > 1e-6 {
		return 0, apperr.Validationf("amount must have at most two decimal places")
	}
	return int64(cents), nil
}

// FromCents renders minor units back as a two-decimal number.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}
