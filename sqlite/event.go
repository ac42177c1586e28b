package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tinyamp/tinyamp"
)

// Compile-time interface verification.
var _ tinyamp.EventService = (*EventService)(nil)

// EventService implements tinyamp.EventService using SQLite.
type EventService struct {
	db *DB
}

// NewEventService creates a new EventService.
func NewEventService(db *DB) *EventService {
	return &EventService{db: db}
}

// FindEventByTitleAndDate retrieves an event by case-insensitive title and
// calendar date.
func (s *EventService) FindEventByTitleAndDate(ctx context.Context, title string, date time.Time) (*tinyamp.Event, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, slug, venue_id, venue_slug, date, description, price,
			price_is_estimated, is_active, is_featured, raw_text_hash, created_at
		FROM events
		WHERE title_lower = ? AND date = ?
	`, strings.ToLower(strings.TrimSpace(title)), date.Format(dateOnly))

	return scanEvent(row.Scan)
}

// CreateEvent creates a new event.
func (s *EventService) CreateEvent(ctx context.Context, event *tinyamp.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	event.ID = uuid.New().String()
	event.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, title, title_lower, slug, venue_id, venue_slug, date, description,
			price, price_is_estimated, is_active, is_featured, raw_text_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, event.ID, event.Title, strings.ToLower(strings.TrimSpace(event.Title)), event.Slug,
		event.VenueID, event.VenueSlug, event.Date.Format(dateOnly), event.Description,
		event.Price, event.PriceIsEstimated, event.IsActive, event.IsFeatured,
		event.RawTextHash, event.CreatedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return tinyamp.Errorf(tinyamp.ECONFLICT, "event %q on %s already exists",
			event.Title, event.Date.Format(dateOnly))
	}

	return err
}

// LinkEventArtist attaches an artist to an event at a bill position.
func (s *EventService) LinkEventArtist(ctx context.Context, link *tinyamp.EventArtist) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO event_artists (event_id, artist_id, is_headliner, position)
		VALUES (?, ?, ?, ?)
	`, link.EventID, link.ArtistID, link.IsHeadliner, link.Position)

	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return tinyamp.Errorf(tinyamp.ECONFLICT, "artist already linked to event")
	}

	return err
}

// FindEvents retrieves stored events, optionally filtered by venue slug,
// ordered by date.
func (s *EventService) FindEvents(ctx context.Context, venueSlug string) ([]*tinyamp.Event, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, title, slug, venue_id, venue_slug, date, description, price,
			price_is_estimated, is_active, is_featured, raw_text_hash, created_at
		FROM events WHERE 1=1`)

	if venueSlug != "" {
		query.WriteString(" AND venue_slug = ?")
		args = append(args, venueSlug)
	}

	query.WriteString(" ORDER BY date ASC, title ASC")

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*tinyamp.Event
	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// FindArtistsByEvent retrieves the bill for an event in position order.
func (s *EventService) FindArtistsByEvent(ctx context.Context, eventID string) ([]*tinyamp.Artist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name, a.image_url, a.bio, a.genre_tags, a.created_at
		FROM artists a
		JOIN event_artists ea ON ea.artist_id = a.id
		WHERE ea.event_id = ?
		ORDER BY ea.position ASC
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []*tinyamp.Artist
	for rows.Next() {
		var artist tinyamp.Artist
		var genreTags, createdAt string

		if err := rows.Scan(&artist.ID, &artist.Name, &artist.ImageURL, &artist.Bio,
			&genreTags, &createdAt); err != nil {
			return nil, err
		}

		artist.GenreTags = splitList(genreTags)
		artist.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		artists = append(artists, &artist)
	}

	return artists, rows.Err()
}

// scanEvent scans one event row through the given Scan function.
func scanEvent(scan func(dest ...any) error) (*tinyamp.Event, error) {
	var event tinyamp.Event
	var date, createdAt string

	err := scan(&event.ID, &event.Title, &event.Slug, &event.VenueID, &event.VenueSlug,
		&date, &event.Description, &event.Price, &event.PriceIsEstimated,
		&event.IsActive, &event.IsFeatured, &event.RawTextHash, &createdAt)

	if err == sql.ErrNoRows {
		return nil, tinyamp.Errorf(tinyamp.ENOTFOUND, "event not found")
	}
	if err != nil {
		return nil, err
	}

	event.Date, err = parseDate(date, "date")
	if err != nil {
		return nil, err
	}
	event.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &event, nil
}
