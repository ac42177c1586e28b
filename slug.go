package tinyamp

import "strings"

// MaxSlugLen bounds slug length before any uniqueness suffix is appended.
const MaxSlugLen = 50

// Slugify derives a URL-safe slug from a title: lowercase, whitespace runs
// become single hyphens, everything outside [a-z0-9-] is stripped, and the
// result is truncated. Deterministic: the same title always yields the same
// slug.
func Slugify(title string) string {
	lower := strings.ToLower(strings.TrimSpace(title))
	lower = strings.Join(strings.Fields(lower), "-")

	var b strings.Builder
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")

	if len(slug) > MaxSlugLen {
		slug = strings.Trim(slug[:MaxSlugLen], "-")
	}

	return slug
}
