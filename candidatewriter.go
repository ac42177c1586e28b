package tinyamp

import "context"

// CandidateWriter serializes a run's assembled candidates for inspection.
// This is a debugging aid for dry runs, not part of the steady-state
// persistence path.
type CandidateWriter interface {
	WriteCandidates(ctx context.Context, venueSlug string, candidates []EventCandidate) error
}
