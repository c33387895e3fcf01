package value

import (
	"math"
	"strconv"
	"strings"
)

// Exponent bounds outside which floats are written in scientific notation.
const (
	minFixedExp = -4
	maxFixedExp = 16
)

// FormatFloat returns the canonical text of f used by every renderer.
//
// The shortest digit string that round trips is used. Decimal exponents in [-4, 16) are
// written in fixed notation with at least one fractional digit ("1.0", "0.0001"), anything
// else in scientific notation with a signed, two digit minimum exponent ("1e+16", "1.5e-05").
// Non-finite values are "inf", "-inf" and "nan".
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if f == 0 {
		if math.Signbit(f) {
			return "-0.0"
		}

		return "0.0"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)

	mark := strings.IndexByte(sci, 'e')

	exp, err := strconv.Atoi(sci[mark+1:])
	if err != nil {
		// strconv always writes a valid exponent
		return sci
	}

	if exp < minFixedExp || exp >= maxFixedExp {
		return sci
	}

	fixed := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(fixed, '.') {
		fixed += ".0"
	}

	return fixed
}

// IsFinite reports whether f is neither infinite nor NaN.
func IsFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
