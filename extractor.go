package tinyamp

// RawCandidate is a transient extraction result: a free-text fragment paired
// with the date string matched near it and enough surrounding context for
// the classifier to apply its exclusion heuristics.
type RawCandidate struct {
	// SourceURL is the page the candidate was extracted from.
	SourceURL string

	// MatchedText is the fragment suspected to name one or more artists.
	MatchedText string

	// MatchedDateText is the raw date expression found near MatchedText.
	MatchedDateText string

	// Context is the surrounding page text. Extractors retain at least
	// 100 characters so self-reference and jargon checks have material
	// to work with.
	Context string

	// Strategy names the extraction strategy that produced the candidate,
	// for debugging.
	Strategy string
}

// Extractor turns page HTML into zero or more raw candidates.
// Implementations are syntactic only: they must not decide whether a
// fragment is really an artist or whether a date is plausible. Later
// stages filter garbage, so over-extraction is acceptable.
type Extractor interface {
	Extract(html string, cfg VenueConfig) ([]RawCandidate, error)
}
