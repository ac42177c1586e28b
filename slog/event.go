package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/tinyamp/tinyamp"
)

// Ensure LoggingEventService implements tinyamp.EventService.
var _ tinyamp.EventService = (*LoggingEventService)(nil)

// LoggingEventService wraps an EventService with debug logging on the
// write path. Reads stay quiet; the dedup gate queries before every
// insert and would drown the log.
type LoggingEventService struct {
	next   tinyamp.EventService
	logger *slog.Logger
}

// NewLoggingEventService creates a new LoggingEventService.
func NewLoggingEventService(next tinyamp.EventService, logger *slog.Logger) *LoggingEventService {
	return &LoggingEventService{next: next, logger: logger}
}

// FindEventByTitleAndDate delegates to the wrapped service.
func (s *LoggingEventService) FindEventByTitleAndDate(ctx context.Context, title string, date time.Time) (*tinyamp.Event, error) {
	return s.next.FindEventByTitleAndDate(ctx, title, date)
}

// CreateEvent logs the event being created and delegates.
func (s *LoggingEventService) CreateEvent(ctx context.Context, event *tinyamp.Event) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create event",
			"title", event.Title,
			"venue", event.VenueSlug,
			"date", event.Date.Format("2006-01-02"),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateEvent(ctx, event)
}

// LinkEventArtist delegates to the wrapped service.
func (s *LoggingEventService) LinkEventArtist(ctx context.Context, link *tinyamp.EventArtist) error {
	return s.next.LinkEventArtist(ctx, link)
}

// FindEvents delegates to the wrapped service.
func (s *LoggingEventService) FindEvents(ctx context.Context, venueSlug string) ([]*tinyamp.Event, error) {
	return s.next.FindEvents(ctx, venueSlug)
}
