package core

// convert.go turns export cells into typed values.
//
// Exports are hand-edited as often as not, so every conversion is lenient:
//   - Currency symbols and thousands separators are stripped from numbers
//   - Accounting negatives "(12.50)" become -12.50
//   - Anything that still is not a number becomes 0, never an error

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericPrefix matches the longest leading decimal number in a string.
// Matches integers, decimals, and scientific notation.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseDecimal converts a cell into a float64.
// Like a browser's parseFloat it reads the leading number and ignores any
// trailing text ("12.5h" is 12.5). Empty or non-numeric input yields 0.
func ParseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	// Detect negative accounting format "(123.45)"
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	m := numericPrefix.FindString(s)
	if m == "" {
		return 0
	}

	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	if negative {
		f = -f
	}
	return f
}

// ParseClockDuration converts "H:MM", "HH:MM:SS" or a plain decimal into
// hours. Malformed clock values yield 0.
func ParseClockDuration(s string) float64 {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ":") {
		return ParseDecimal(s)
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0
	}

	var total float64
	scale := 1.0
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0
		}
		total += float64(n) / scale
		scale *= 60
	}
	return total
}

