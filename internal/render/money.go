package render

import (
	"math"
	"strconv"
	"strings"
)

// FormatMoney renders amount with the currency symbol, thousands separators
// and two decimals: "$1,234.50".
func FormatMoney(symbol string, amount float64) string {
	neg := amount < 0
	s := strconv.FormatFloat(math.Abs(amount), 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatHours renders hours with two decimals and an "h" suffix.
func FormatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 2, 64) + "h"
}

// FormatPercent renders a rate without trailing zeros: 10, 8.25.
func FormatPercent(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}
