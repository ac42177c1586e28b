package mock

import (
	"context"

	"github.com/tinyamp/tinyamp"
)

var _ tinyamp.PlaceEnricher = (*PlaceEnricher)(nil)

// PlaceEnricher is a mock implementation of tinyamp.PlaceEnricher.
type PlaceEnricher struct {
	EnrichVenueFn func(ctx context.Context, name, address string) (*tinyamp.PlaceEnrichment, error)
}

func (e *PlaceEnricher) EnrichVenue(ctx context.Context, name, address string) (*tinyamp.PlaceEnrichment, error) {
	return e.EnrichVenueFn(ctx, name, address)
}

var _ tinyamp.ArtistEnricher = (*ArtistEnricher)(nil)

// ArtistEnricher is a mock implementation of tinyamp.ArtistEnricher.
type ArtistEnricher struct {
	EnrichArtistFn func(ctx context.Context, name string) (*tinyamp.ArtistEnrichment, error)
}

func (e *ArtistEnricher) EnrichArtist(ctx context.Context, name string) (*tinyamp.ArtistEnrichment, error) {
	return e.EnrichArtistFn(ctx, name)
}
