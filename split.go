package tinyamp

import (
	"regexp"
	"strings"
)

// billSeparatorRe splits multi-artist bill text on the separators venue
// listings actually use. Bare "and" is not a separator: too many band
// names contain it ("Florence and the Machine").
var billSeparatorRe = regexp.MustCompile(`(?i)\s*(?:,|\s\+\s|\s&\s|\sw/\s|\swith\s)\s*`)

// SplitArtistText splits extracted bill text ("Japanese Breakfast, Mini
// Trees") into individual artist fragments. Fragments are trimmed; empty
// ones are dropped. Classification decides which fragments are names.
func SplitArtistText(text string) []string {
	var parts []string
	for _, p := range billSeparatorRe.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
