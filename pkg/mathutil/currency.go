// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/loan-prepay/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Halves round away from zero on the decimal representation of val, so 1.005
// becomes 1.01 rather than the 1.00 a binary float multiply would produce.
func Round(val float64) float64 {
	return RoundDecimal(val).InexactFloat64()
}

// RoundDecimal is Round returning the exact decimal value.
func RoundDecimal(val float64) decimal.Decimal {
	return decimal.NewFromFloat(val).Round(constants.DecimalPlaces)
}

// Sum adds values exactly after rounding each to currency precision.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(RoundDecimal(v))
	}
	return total.InexactFloat64()
}

// IsZero checks if a value is effectively zero once rounded to currency.
func IsZero(val float64) bool {
	return Round(val) == 0
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}
