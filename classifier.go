package tinyamp

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Artist name length bounds, in runes. Shorter fragments are almost always
// abbreviations or stray tokens; longer ones are sentences.
const (
	MinArtistNameLen = 3
	MaxArtistNameLen = 50
)

// ClassifiedName is a text fragment judged plausible as a performer name,
// together with the rule that accepted it.
type ClassifiedName struct {
	Name string
	Rule string
}

// Lexicon holds the exclusion vocabularies used by the classifier. The sets
// are injectable so tests can exercise edge cases and new venues can extend
// the jargon list without touching classification logic.
type Lexicon struct {
	// Weekdays and Months reject exact matches: "Friday" or "August"
	// standing alone in an artist slot is calendar furniture, not a band.
	Weekdays map[string]bool
	Months   map[string]bool

	// Jargon rejects lowercase containment matches: genre labels and
	// ticketing boilerplate that leak into listing text.
	Jargon []string
}

// DefaultLexicon returns the exclusion sets tuned against SF venue pages.
func DefaultLexicon() Lexicon {
	weekdays := []string{
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
		"mon", "tue", "tues", "wed", "thu", "thur", "thurs", "fri", "sat", "sun",
	}
	months := []string{
		"january", "february", "march", "april", "may", "june", "july",
		"august", "september", "october", "november", "december",
		"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept",
		"oct", "nov", "dec",
	}

	lex := Lexicon{
		Weekdays: make(map[string]bool, len(weekdays)),
		Months:   make(map[string]bool, len(months)),
		Jargon: []string{
			// Genre labels.
			"indie", "punk", "jazz", "rock show", "hip hop", "hip-hop",
			"electronic", "acoustic", "singer-songwriter", "tribute",
			// Ticketing and door boilerplate.
			"doors", "advance", "ticket", "tickets", "all ages", "21 and over",
			"21+", "18 and over", "sold out", "on sale", "rsvp", "presale",
			"day of show", "box office", "free show", "no refunds",
			// Listing furniture.
			"upcoming", "calendar", "private event", "more info", "buy now",
		},
	}
	for _, w := range weekdays {
		lex.Weekdays[w] = true
	}
	for _, m := range months {
		lex.Months[m] = true
	}
	return lex
}

var (
	clockTimeRe = regexp.MustCompile(`^\d{1,2}:\d{2}`)
	priceRe     = regexp.MustCompile(`^\$\d+`)
	// Two-plus capitalized words, or one capitalized word of real length.
	capitalizedRunRe = regexp.MustCompile(`^[A-Z][\w'.&-]*(?:\s+[\w'.&-]+)*$`)
)

// Classifier decides whether free text denotes a plausible performer name.
type Classifier struct {
	Lexicon Lexicon
}

// NewClassifier creates a Classifier with the default exclusion lexicon.
func NewClassifier() *Classifier {
	return &Classifier{Lexicon: DefaultLexicon()}
}

// Classify judges one text fragment. The second return value reports
// acceptance; rejection is a normal filtering outcome, not an error.
func (c *Classifier) Classify(text, venueDisplayName string) (ClassifiedName, bool) {
	name := strings.Join(strings.Fields(text), " ")

	n := utf8.RuneCountInString(name)
	if n < MinArtistNameLen || n > MaxArtistNameLen {
		return ClassifiedName{}, false
	}

	lower := strings.ToLower(name)
	if c.Lexicon.Weekdays[lower] || c.Lexicon.Months[lower] {
		return ClassifiedName{}, false
	}

	for _, jargon := range c.Lexicon.Jargon {
		if strings.Contains(lower, jargon) {
			return ClassifiedName{}, false
		}
	}

	// Self-reference: venue names leak into the artist slot from "at The
	// Independent" style fragments.
	if venue := strings.ToLower(strings.TrimSpace(venueDisplayName)); venue != "" {
		if strings.Contains(lower, venue) {
			return ClassifiedName{}, false
		}
	}

	if clockTimeRe.MatchString(name) || priceRe.MatchString(name) {
		return ClassifiedName{}, false
	}

	rule := "passed-exclusions"
	if capitalizedRunRe.MatchString(name) && startsUpper(name) {
		rule = "capitalized-run"
	}

	return ClassifiedName{Name: name, Rule: rule}, true
}

// ClassifyAll filters a list of fragments in document order and caps the
// result at MaxArtistsPerEvent, so a stray paragraph can never become a
// ten-artist bill.
func (c *Classifier) ClassifyAll(texts []string, venueDisplayName string) []ClassifiedName {
	var names []ClassifiedName
	seen := make(map[string]bool)

	for _, t := range texts {
		cn, ok := c.Classify(t, venueDisplayName)
		if !ok {
			continue
		}
		key := strings.ToLower(cn.Name)
		if seen[key] {
			continue
		}
		seen[key] = true

		names = append(names, cn)
		if len(names) == MaxArtistsPerEvent {
			break
		}
	}

	return names
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
