// Package format renders numbers for display. Every grouped string in the
// application, whether echoed from an input field or computed by the
// mortgage engine, goes through Group.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Group inserts thousands separators into the integer portion of a numeral
// and keeps everything from the first decimal point on exactly as given, so
// "1234." becomes "1,234." and "1234.5" becomes "1,234.5".
func Group(numeral string) string {
	intPart, rest := numeral, ""
	if idx := strings.IndexByte(numeral, '.'); idx >= 0 {
		intPart, rest = numeral[:idx], numeral[idx:]
	}

	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return sign + intPart + rest
}

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return sign + formatPositiveCurrency(math.Abs(amount))
}

// Number returns the shortest decimal form of value with thousands
// separators and no forced fraction digits (240000 -> "240,000",
// 1077.7 -> "1,077.7").
func Number(value float64) string {
	return Group(Plain(value))
}

// Plain converts value to text the way a browser's Number toString does:
// the shortest decimal that round-trips, switching to exponent notation at
// or above 1e21 and below 1e-6.
func Plain(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	case value == 0:
		return "0"
	}

	abs := math.Abs(value)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(value, 'e', -1, 64))
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// trimExponent drops the zero padding Go puts on exponents ("1e-07" -> "1e-7").
func trimExponent(s string) string {
	idx := strings.IndexByte(s, 'e')
	if idx < 0 || idx+2 >= len(s) {
		return s
	}
	mantissa, sign, digits := s[:idx], s[idx+1:idx+2], strings.TrimLeft(s[idx+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

func formatPositiveCurrency(value float64) string {
	return Group(fmt.Sprintf("%.2f", value))
}
