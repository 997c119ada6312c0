// Package digits implements the single arithmetic bridge from a chaotic real
// value to an integer key: extracting its alpha most-significant decimal
// digits.
package digits

import "math"

// MaxAlpha is the largest significant-digit count ExtractSignificant accepts
// (a float64 mantissa only carries ~15-17 correct decimal digits, per
// spec.md's 1<=alpha<=17 domain).
const MaxAlpha = 17

// ExtractSignificant returns the integer formed by the top alpha decimal
// digits of value. For value<=0 or alpha outside [1,17] it returns 0, per the
// parameter-domain error policy: a degenerate but well-defined result, never
// a panic.
func ExtractSignificant(value float64, alpha int) uint64 {
	if value <= 0 || alpha < 1 || alpha > MaxAlpha {
		return 0
	}
	e := math.Floor(math.Log10(value))
	scaled := value / math.Pow(10, e-float64(alpha)+1)
	return uint64(math.Floor(scaled))
}
