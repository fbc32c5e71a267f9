package utils

import "strings"

// ContainsFold reports whether any of the needles is a case-insensitive substring of s.
func ContainsFold(s string, needles ...string) bool {
	lower := strings.ToLower(s)
	for _, n := range needles {
		if n != "" && strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
