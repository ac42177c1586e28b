package mock

import (
	"context"
	"time"

	"github.com/tinyamp/tinyamp"
)

var _ tinyamp.EventService = (*EventService)(nil)

// EventService is a mock implementation of tinyamp.EventService.
type EventService struct {
	FindEventByTitleAndDateFn func(ctx context.Context, title string, date time.Time) (*tinyamp.Event, error)
	CreateEventFn             func(ctx context.Context, event *tinyamp.Event) error
	LinkEventArtistFn         func(ctx context.Context, link *tinyamp.EventArtist) error
	FindEventsFn              func(ctx context.Context, venueSlug string) ([]*tinyamp.Event, error)
}

func (s *EventService) FindEventByTitleAndDate(ctx context.Context, title string, date time.Time) (*tinyamp.Event, error) {
	return s.FindEventByTitleAndDateFn(ctx, title, date)
}

func (s *EventService) CreateEvent(ctx context.Context, event *tinyamp.Event) error {
	return s.CreateEventFn(ctx, event)
}

func (s *EventService) LinkEventArtist(ctx context.Context, link *tinyamp.EventArtist) error {
	return s.LinkEventArtistFn(ctx, link)
}

func (s *EventService) FindEvents(ctx context.Context, venueSlug string) ([]*tinyamp.Event, error) {
	return s.FindEventsFn(ctx, venueSlug)
}
