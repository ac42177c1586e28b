package mock

import (
	"context"

	"github.com/tinyamp/tinyamp"
)

var _ tinyamp.CandidateWriter = (*CandidateWriter)(nil)

// CandidateWriter is a mock implementation of tinyamp.CandidateWriter.
type CandidateWriter struct {
	WriteCandidatesFn func(ctx context.Context, venueSlug string, candidates []tinyamp.EventCandidate) error
}

func (w *CandidateWriter) WriteCandidates(ctx context.Context, venueSlug string, candidates []tinyamp.EventCandidate) error {
	return w.WriteCandidatesFn(ctx, venueSlug, candidates)
}

var _ tinyamp.EventURLDiscoverer = (*EventURLDiscoverer)(nil)

// EventURLDiscoverer is a mock implementation of tinyamp.EventURLDiscoverer.
type EventURLDiscoverer struct {
	DiscoverEventURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (d *EventURLDiscoverer) DiscoverEventURLs(ctx context.Context, baseURL string) ([]string, error) {
	return d.DiscoverEventURLsFn(ctx, baseURL)
}
