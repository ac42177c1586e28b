package tinyamp

import (
	"context"
	"time"
)

// Artist represents a performer. Artists are identified by case-insensitive
// name match against existing rows before a new one is created; near-duplicate
// spellings ("Björk" vs "Bjork") are intentionally not unified.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Best-effort enrichment fields. Zero values mean "not enriched".
	ImageURL  string   `json:"imageUrl,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	GenreTags []string `json:"genreTags,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the artist contains invalid fields.
func (a *Artist) Validate() error {
	if a.Name == "" {
		return Errorf(EINVALID, "artist name required")
	}
	return nil
}

// ArtistService represents a service for managing artists.
type ArtistService interface {
	// FindArtistByName retrieves an artist by exact case-insensitive name
	// match. Returns ENOTFOUND if no artist matches.
	FindArtistByName(ctx context.Context, name string) (*Artist, error)

	// CreateArtist creates a new artist.
	CreateArtist(ctx context.Context, artist *Artist) error
}
