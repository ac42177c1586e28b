package goquery

import (
	"github.com/tinyamp/tinyamp"
)

// Ensure Strategies implements tinyamp.Extractor at compile time.
var _ tinyamp.Extractor = (*Strategies)(nil)

// Strategies runs a ranked list of extraction strategies and concatenates
// their results. Strategies are never short-circuited: different strategies
// catch different subsets of real events, and downstream filtering plus
// dedup handles the overlap. A failing strategy is skipped; the run fails
// only when every strategy fails and nothing was extracted.
type Strategies struct {
	extractors []tinyamp.Extractor
}

// NewStrategies creates a strategy runner. Order is the conceptual
// reliability ranking (structured data first), though correctness does not
// depend on it.
func NewStrategies(extractors ...tinyamp.Extractor) *Strategies {
	return &Strategies{extractors: extractors}
}

// DefaultStrategies wires the standard ladder: JSON-LD, DOM selectors,
// then full-text regex over boilerplate-stripped content.
func DefaultStrategies(content tinyamp.MainContentExtractor) *Strategies {
	return NewStrategies(
		NewJSONLDExtractor(),
		NewSelectorExtractor(),
		NewTextExtractor(content),
	)
}

// Extract runs every strategy against the page.
func (s *Strategies) Extract(html string, cfg tinyamp.VenueConfig) ([]tinyamp.RawCandidate, error) {
	var all []tinyamp.RawCandidate
	var firstErr error

	for _, e := range s.extractors {
		candidates, err := e.Extract(html, cfg)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		all = append(all, candidates...)
	}

	if len(all) == 0 && firstErr != nil {
		return nil, firstErr
	}

	return all, nil
}
