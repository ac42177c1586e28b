package tinyamp

import "context"

// PlaceEnrichment holds third-party place metadata for a venue.
type PlaceEnrichment struct {
	PlaceID     string
	Rating      float64
	ReviewCount int
	PhotoURLs   []string
}

// PlaceEnricher looks up place metadata by venue name and address.
// Best-effort contract: implementations return an error on any failure
// (missing credentials, network error, zero results) and callers must
// degrade to no enrichment without failing ingestion.
type PlaceEnricher interface {
	EnrichVenue(ctx context.Context, name, address string) (*PlaceEnrichment, error)
}

// ArtistEnrichment holds third-party artist metadata.
type ArtistEnrichment struct {
	ImageURL  string
	Bio       string
	GenreTags []string
}

// ArtistEnricher looks up artist metadata by name. Same best-effort
// contract as PlaceEnricher.
type ArtistEnricher interface {
	EnrichArtist(ctx context.Context, name string) (*ArtistEnrichment, error)
}
