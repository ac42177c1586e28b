package mock

import (
	"context"

	"github.com/tinyamp/tinyamp"
)

var _ tinyamp.VenueService = (*VenueService)(nil)

// VenueService is a mock implementation of tinyamp.VenueService.
type VenueService struct {
	FindVenueBySlugFn func(ctx context.Context, slug string) (*tinyamp.Venue, error)
	CreateVenueFn     func(ctx context.Context, venue *tinyamp.Venue) error
	FindVenuesFn      func(ctx context.Context) ([]*tinyamp.Venue, error)
}

func (s *VenueService) FindVenueBySlug(ctx context.Context, slug string) (*tinyamp.Venue, error) {
	return s.FindVenueBySlugFn(ctx, slug)
}

func (s *VenueService) CreateVenue(ctx context.Context, venue *tinyamp.Venue) error {
	return s.CreateVenueFn(ctx, venue)
}

func (s *VenueService) FindVenues(ctx context.Context) ([]*tinyamp.Venue, error) {
	return s.FindVenuesFn(ctx)
}
