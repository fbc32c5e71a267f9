// Package parser converts the human-formatted numbers found on market pages
// into float64 values. Every function here is total: malformed input yields 0.
package parser

import (
	"strconv"
	"strings"
)

var magnitudes = map[byte]float64{
	'K': 1e3,
	'M': 1e6,
	'B': 1e9,
	'T': 1e12,
}

// ParseVolume converts strings such as "12.5K", "3M", "1B" or "1,234" to a number.
// Empty, "N/A" and unparseable input return 0.
func ParseVolume(s string) float64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "N/A" || s == "-" || s == "--" {
		return 0
	}

	multiplier := 1.0
	if m, ok := magnitudes[s[len(s)-1]]; ok {
		multiplier = m
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return 0
	}
	return v * multiplier
}

// ParseFloat parses a plain decimal with optional sign, thousands separators and
// a trailing percent sign. It returns 0 when s is not a number.
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "()")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParsePercent parses "-2.27%", "+12.00%" or "(3.1%)" into -2.27, 12 and 3.1.
func ParsePercent(s string) float64 {
	return ParseFloat(s)
}

// ParsePriceString splits an intraday price cell like "92.17 -2.14 (-2.27%)"
// into its price and percent change. hasChange is false when no percent token exists.
func ParsePriceString(s string) (price float64, changePct float64, hasChange bool) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return 0, 0, false
	}
	price = ParseFloat(parts[0])
	for _, part := range parts[1:] {
		if strings.Contains(part, "%") {
			return price, ParsePercent(part), true
		}
	}
	return price, 0, false
}
