// Package goquery provides the syntactic extraction strategies that turn
// fetched venue-page HTML into raw event candidates: structured-data
// (JSON-LD) extraction, DOM-selector extraction, and full-text regex
// extraction. Strategies over-extract by design; the classifier and date
// normalizer filter garbage downstream.
package goquery

import (
	"regexp"

	"github.com/tinyamp/tinyamp"
)

// Built-in date expressions, tried against listing text in order.
// Supported shapes: "Month D, YYYY" (ordinal suffixes allowed, comma
// optional, 3-letter abbreviations allowed), "M/D/YYYY", "M.D.YYYY",
// "YYYY-M-D".
var builtinDateRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
	regexp.MustCompile(`\b\d{1,2}\.\d{1,2}\.\d{4}\b`),
	regexp.MustCompile(`\b\d{4}-\d{1,2}-\d{1,2}\b`),
}

// Capitalized-word runs are the artist-shaped pattern: a capitalized token
// followed by further tokens (connectives allowed), or a single capitalized
// word of real length.
var builtinArtistRe = regexp.MustCompile(`[A-Z][A-Za-z0-9'&.!-]*(?:\s+(?:of|the|and|a|[A-Z0-9][A-Za-z0-9'&.!-]*))+|[A-Z][A-Za-z0-9'&.!-]{2,}`)

// dateRes returns the date expressions for a venue: configured patterns
// first, then the built-ins. Invalid configured patterns are skipped.
func dateRes(cfg tinyamp.VenueConfig) []*regexp.Regexp {
	return append(compilePatterns(cfg.DatePatterns), builtinDateRes...)
}

// artistRes returns the artist expressions for a venue, configured
// patterns first.
func artistRes(cfg tinyamp.VenueConfig) []*regexp.Regexp {
	return append(compilePatterns(cfg.ArtistPatterns), builtinArtistRe)
}

func compilePatterns(patterns []string) []*regexp.Regexp {
	var res []*regexp.Regexp
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			// A broken venue config pattern must not take down the
			// built-in ladder.
			continue
		}
		res = append(res, re)
	}
	return res
}

// firstDateMatch returns the first date-shaped substring in text, or "".
func firstDateMatch(text string, res []*regexp.Regexp) string {
	for _, re := range res {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}
