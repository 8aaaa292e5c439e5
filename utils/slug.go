package utils

import (
	"regexp"
	"strings"
)

const maxSlugLength = 100

var (
	slugStripPattern    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugCollapsePattern = regexp.MustCompile(`\s+`)
)

// SlugFromTitle derives the URL-safe lookup key for a bill. Slugs are derived
// once at insert time and never regenerated, so published links stay stable.
func SlugFromTitle(title string) string {
	slug := strings.ToLower(title)
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = slugCollapsePattern.ReplaceAllString(strings.TrimSpace(slug), "-")
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
	}
	return strings.Trim(slug, "-")
}
