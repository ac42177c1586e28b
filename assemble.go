package tinyamp

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLen bounds synthesized titles before slug derivation.
const MaxTitleLen = 200

// Assembler combines a venue, classified artist names, and a normalized
// date into an EventCandidate. It is scoped to one pipeline run: slug
// collision counters reset with each new Assembler.
type Assembler struct {
	slugCounts map[string]int
}

// NewAssembler creates an Assembler for a single run.
func NewAssembler() *Assembler {
	return &Assembler{slugCounts: make(map[string]int)}
}

// Assemble builds a candidate with synthesized title, deterministic slug,
// and placeholder defaults for fields the extractor did not supply. The
// default price is explicitly flagged as estimated.
func (a *Assembler) Assemble(cfg VenueConfig, names []ClassifiedName, date time.Time, rawContext string) EventCandidate {
	artistNames := make([]string, 0, len(names))
	for _, n := range names {
		artistNames = append(artistNames, n.Name)
	}

	title := synthesizeTitle(artistNames, cfg.Name)

	slug := Slugify(title)
	a.slugCounts[slug]++
	if n := a.slugCounts[slug]; n > 1 {
		// Same-run collision: disambiguate with a counter suffix. Slugs
		// stay deterministic across runs for non-colliding titles.
		slug = slug + "-" + strconv.Itoa(n)
	}

	return EventCandidate{
		Title:            title,
		Slug:             slug,
		VenueName:        cfg.Name,
		VenueSlug:        cfg.Slug,
		Date:             date,
		ArtistNames:      artistNames,
		Price:            DefaultPrice,
		PriceIsEstimated: true,
		RawText:          rawContext,
	}
}

// synthesizeTitle renders "<artist> at <venue>" for a single performer and
// a comma-joined bill for several, truncated to MaxTitleLen.
func synthesizeTitle(artistNames []string, venueName string) string {
	joined := strings.Join(artistNames, ", ")
	title := joined + " at " + venueName
	if len(title) > MaxTitleLen {
		// Cut on a rune boundary; a byte cut can leave invalid UTF-8.
		cut := MaxTitleLen
		for cut > 0 && !utf8.RuneStart(title[cut]) {
			cut--
		}
		title = strings.TrimSpace(title[:cut])
	}
	return title
}
