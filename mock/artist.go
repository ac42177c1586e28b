package mock

import (
	"context"

	"github.com/tinyamp/tinyamp"
)

var _ tinyamp.ArtistService = (*ArtistService)(nil)

// ArtistService is a mock implementation of tinyamp.ArtistService.
type ArtistService struct {
	FindArtistByNameFn func(ctx context.Context, name string) (*tinyamp.Artist, error)
	CreateArtistFn     func(ctx context.Context, artist *tinyamp.Artist) error
}

func (s *ArtistService) FindArtistByName(ctx context.Context, name string) (*tinyamp.Artist, error) {
	return s.FindArtistByNameFn(ctx, name)
}

func (s *ArtistService) CreateArtist(ctx context.Context, artist *tinyamp.Artist) error {
	return s.CreateArtistFn(ctx, artist)
}
