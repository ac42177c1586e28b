package tinyamp

import (
	"strings"
	"time"
)

// SeenKeys tracks dedup keys already encountered within one pipeline run.
// It is explicit, caller-owned state: Dedupe is a pure function of its
// input list plus this collection, never of ambient globals. Persisted
// events are consulted separately through the EventService dedup gate.
type SeenKeys map[string]struct{}

// NewSeenKeys creates an empty per-run key set.
func NewSeenKeys() SeenKeys {
	return make(SeenKeys)
}

// Add records a (title, date) key.
func (s SeenKeys) Add(title string, date time.Time) {
	s[DedupKey(title, date)] = struct{}{}
}

// Contains reports whether a (title, date) key was already recorded.
func (s SeenKeys) Contains(title string, date time.Time) bool {
	_, ok := s[DedupKey(title, date)]
	return ok
}

// DedupKey builds the exact-match dedup key: case-folded title plus
// calendar date. Fuzzy matching of artist spellings is deliberately not
// performed here.
func DedupKey(title string, date time.Time) string {
	return strings.ToLower(strings.TrimSpace(title)) + "|" + date.Format("2006-01-02")
}

// Dedupe collapses candidates that represent the same real-world event:
// exact (title, date) duplicates, and same-venue same-date candidates whose
// artist sets overlap. First-seen order is preserved and the first write
// wins; later duplicates are dropped, not merged. The seen set is updated
// in place so successive batches within one run dedupe against each other.
func Dedupe(candidates []EventCandidate, seen SeenKeys) []EventCandidate {
	if seen == nil {
		seen = NewSeenKeys()
	}

	var kept []EventCandidate
	for _, c := range candidates {
		if seen.Contains(c.Title, c.Date) {
			continue
		}
		if overlapsKept(c, kept) {
			continue
		}
		seen.Add(c.Title, c.Date)
		kept = append(kept, c)
	}

	return kept
}

// overlapsKept reports whether a candidate shares venue, date, and at least
// one artist with an already-kept candidate. Catches the same bill surfaced
// by different strategies under different titles.
func overlapsKept(c EventCandidate, kept []EventCandidate) bool {
	for _, k := range kept {
		if k.VenueSlug != c.VenueSlug || !k.Date.Equal(c.Date) {
			continue
		}
		if artistsOverlap(k.ArtistNames, c.ArtistNames) {
			return true
		}
	}
	return false
}

func artistsOverlap(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, name := range a {
		set[strings.ToLower(name)] = true
	}
	for _, name := range b {
		if set[strings.ToLower(name)] {
			return true
		}
	}
	return false
}
