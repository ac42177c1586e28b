package tinyamp

import (
	"context"
	"time"
)

// Venue represents a music venue that hosts events.
// Venues are identified by slug and are created by the pipeline only when
// absent, with name-derived defaults that are never overwritten afterwards.
type Venue struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Address    string `json:"address"`
	City       string `json:"city"`
	WebsiteURL string `json:"websiteUrl"`

	// Best-effort enrichment fields. Zero values mean "not enriched".
	PlaceID     string   `json:"placeId,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	ReviewCount int      `json:"reviewCount,omitempty"`
	PhotoURLs   []string `json:"photoUrls,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the venue contains invalid fields.
func (v *Venue) Validate() error {
	if v.Name == "" {
		return Errorf(EINVALID, "venue name required")
	}
	if v.Slug == "" {
		return Errorf(EINVALID, "venue slug required")
	}
	return nil
}

// VenueService represents a service for managing venues.
// This is the venue half of the persistence boundary consumed by the
// ingestion pipeline.
type VenueService interface {
	// FindVenueBySlug retrieves a venue by its slug.
	// Returns ENOTFOUND if the venue does not exist.
	FindVenueBySlug(ctx context.Context, slug string) (*Venue, error)

	// CreateVenue creates a new venue. Used on demand only, never
	// proactively; defaults come from the venue configuration.
	CreateVenue(ctx context.Context, venue *Venue) error

	// FindVenues retrieves all venues ordered by name.
	FindVenues(ctx context.Context) ([]*Venue, error)
}

// VenueConfig describes how to scrape one venue. New venues are data, not
// code: the extraction engine is parameterized entirely by this value.
type VenueConfig struct {
	Name string   `yaml:"name"`
	Slug string   `yaml:"slug"`
	URLs []string `yaml:"urls"`

	// Dynamic marks venues whose calendars require JavaScript rendering.
	// The pipeline selects a browser-backed fetcher for these.
	Dynamic bool `yaml:"dynamic"`

	// DiscoverSitemap enables sitemap-based discovery of per-event detail
	// pages under the venue's site.
	DiscoverSitemap bool `yaml:"discoverSitemap"`

	// Selectors are venue-specific CSS selectors for event listing blocks.
	// When empty, the extractor falls back to its built-in selector list.
	Selectors []string `yaml:"selectors"`

	// DatePatterns and ArtistPatterns are additional regular expressions
	// tried before the built-in ones. Optional.
	DatePatterns   []string `yaml:"datePatterns"`
	ArtistPatterns []string `yaml:"artistPatterns"`

	Address string `yaml:"address"`
	City    string `yaml:"city"`
}

// Validate returns an error if the config is not scrapeable.
func (c *VenueConfig) Validate() error {
	if c.Name == "" {
		return Errorf(EINVALID, "venue config name required")
	}
	if c.Slug == "" {
		return Errorf(EINVALID, "venue config slug required")
	}
	if len(c.URLs) == 0 {
		return Errorf(EINVALID, "venue config for %q has no URLs", c.Name)
	}
	return nil
}
