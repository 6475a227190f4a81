package math

import (
	"math"
	"strconv"
)

// Precision is the number of decimals used when presenting degrees.
const Precision = 3

// Format formats a float with the default precision.
func Format(f float64) string {
	return FormatWith(f, Precision)
}

// FormatWith formats a float with the given number of decimals.
// NaN and infinite values are printed as is.
func FormatWith(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', precision, 64)
	if s == "-"+strconv.FormatFloat(0, 'f', precision, 64) {
		// avoid presenting rounding noise as negative zero
		return s[1:]
	}
	return s
}

// FormatAll formats all values with the default precision.
func FormatAll(ff []float64) []string {
	ss := make([]string, len(ff))
	for i, f := range ff {
		ss[i] = Format(f)
	}
	return ss
}
