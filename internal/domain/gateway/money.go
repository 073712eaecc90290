package gateway

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// MinorUnits converts a major-unit amount to minor currency units,
// rounding half away from zero: 19.995 -> 2000, 10 -> 1000.
// Decimal arithmetic avoids the float drift of amount*100.
func MinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart()
}

// FormatAmount renders a major-unit amount with exactly two decimal places,
// the representation signature-based gateways sign over.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// MajorUnits converts a minor-unit amount back to major currency units
func MajorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(hundred)
}
