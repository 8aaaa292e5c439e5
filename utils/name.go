package utils

import (
	"regexp"
	"strings"
)

// Legislative-record names come in forms like "Rep. Smith, John [R-NY-2]" or
// "Hon. Smith, John". The finance registry wants "First Last".
var (
	honorificPattern = regexp.MustCompile(`(?i)^(rep\.|sen\.|congressman|congresswoman|hon\.)\s+`)
	bracketPattern   = regexp.MustCompile(`\[[^\]]*\]\s*$`)
)

// NormalizeSponsorName converts a raw sponsor name into a best-effort
// "First Last" search key. It always returns a string; there is no guarantee
// the result resolves to a matchable identity.
func NormalizeSponsorName(raw string) string {
	clean := honorificPattern.ReplaceAllString(strings.TrimSpace(raw), "")
	clean = bracketPattern.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)

	parts := strings.Split(clean, ",")
	if len(parts) >= 2 {
		last := strings.TrimSpace(parts[0])
		first := strings.Fields(strings.TrimSpace(parts[1]))
		if len(first) > 0 {
			return first[0] + " " + last
		}
		return last
	}
	return clean
}
