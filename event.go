package tinyamp

import (
	"context"
	"time"
)

// Maximum number of artists accepted per event. The classifier can surface
// several artist-shaped substrings from one context window; anything past
// this bound is more likely an unrelated paragraph than a bill.
const MaxArtistsPerEvent = 3

// DefaultPrice is the placeholder ticket price assigned when a scrape did
// not yield one. It is always stored with PriceIsEstimated set so defaulted
// values never masquerade as scraped data.
const DefaultPrice = "$20"

// Event represents a persisted event. Events are created once per unique
// (title, date) key and never updated in place by the pipeline.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	VenueID     string    `json:"venueId"`
	VenueSlug   string    `json:"venueSlug"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Price       string    `json:"price"`

	// PriceIsEstimated marks Price as a placeholder default rather than a
	// value scraped from the source page.
	PriceIsEstimated bool `json:"priceIsEstimated"`

	IsActive   bool `json:"isActive"`
	IsFeatured bool `json:"isFeatured"`

	// RawTextHash is a provenance hash of the scraped context the event
	// was assembled from, for debugging extraction regressions.
	RawTextHash string `json:"rawTextHash,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the event contains invalid fields.
func (e *Event) Validate() error {
	if e.Title == "" {
		return Errorf(EINVALID, "event title required")
	}
	if e.Slug == "" {
		return Errorf(EINVALID, "event slug required")
	}
	if e.VenueID == "" {
		return Errorf(EINVALID, "event venue ID required")
	}
	if e.Date.IsZero() {
		return Errorf(EINVALID, "event date required")
	}
	return nil
}

// EventArtist links an event to a performer. Position is the stable index
// of the artist within the bill; the headliner is always position 0.
type EventArtist struct {
	EventID     string `json:"eventId"`
	ArtistID    string `json:"artistId"`
	IsHeadliner bool   `json:"isHeadliner"`
	Position    int    `json:"position"`
}

// EventCandidate is an assembled, not-yet-persisted event. Candidates flow
// from the assembler through dedup to the persistence gate.
type EventCandidate struct {
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	VenueName        string    `json:"venueName"`
	VenueSlug        string    `json:"venueSlug"`
	Date             time.Time `json:"date"`
	ArtistNames      []string  `json:"artistNames"`
	Price            string    `json:"price"`
	PriceIsEstimated bool      `json:"priceIsEstimated"`
	RawText          string    `json:"rawText,omitempty"`
}

// Validate returns an error if the candidate is not storable.
func (c *EventCandidate) Validate() error {
	if c.Title == "" {
		return Errorf(EINVALID, "candidate title required")
	}
	if c.VenueSlug == "" {
		return Errorf(EINVALID, "candidate venue slug required")
	}
	if c.Date.IsZero() {
		return Errorf(EINVALID, "candidate date required")
	}
	if len(c.ArtistNames) == 0 {
		return Errorf(EINVALID, "candidate for %q has no artists", c.Title)
	}
	if len(c.ArtistNames) > MaxArtistsPerEvent {
		return Errorf(EINVALID, "candidate for %q has %d artists, max %d",
			c.Title, len(c.ArtistNames), MaxArtistsPerEvent)
	}
	return nil
}

// EventService represents a service for managing events.
// FindEventByTitleAndDate is the dedup gate: the pipeline queries it before
// every insert and skips on a hit, which makes repeated runs idempotent.
type EventService interface {
	// FindEventByTitleAndDate retrieves an event by case-insensitive title
	// and calendar date. Returns ENOTFOUND if no event matches.
	FindEventByTitleAndDate(ctx context.Context, title string, date time.Time) (*Event, error)

	// CreateEvent creates a new event.
	CreateEvent(ctx context.Context, event *Event) error

	// LinkEventArtist attaches an artist to an event at a bill position.
	LinkEventArtist(ctx context.Context, link *EventArtist) error

	// FindEvents retrieves stored events, optionally filtered by venue
	// slug, ordered by date.
	FindEvents(ctx context.Context, venueSlug string) ([]*Event, error)
}
