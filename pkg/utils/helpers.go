package utils

import (
	"github.com/shopspring/decimal"
)

// RoundTo rounds a float to the given number of decimal places, half away
// from zero. Rounding goes through a decimal so 2.25 becomes 2.3 rather than
// the 2.2 that binary float arithmetic would give.
func RoundTo(value float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(value).Round(places).Float64()
	return f
}

// Round1 rounds to one decimal place, the precision of every percentage
func Round1(value float64) float64 {
	return RoundTo(value, 1)
}

// InRange reports whether value lies within [min, max]
func InRange(value, min, max float64) bool {
	return value >= min && value <= max
}

// Percent returns 100*(to-from)/from, or 0 when from is zero
func Percent(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}
