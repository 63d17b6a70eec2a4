package common

import "strings"

// NormalizeCityKey trims surrounding whitespace and lowercases s so it can be
// matched against dataset keys.
func NormalizeCityKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// HasAnyPrefix reports whether s starts with any of the prefixes.
func HasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
