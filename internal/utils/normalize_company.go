package utils

import "strings"

// NormalizeCompanyName reduces a company name to its matching key:
// surrounding whitespace removed and lower case.
func NormalizeCompanyName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
