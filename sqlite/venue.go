package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/tinyamp/tinyamp"
)

// Compile-time interface verification.
var _ tinyamp.VenueService = (*VenueService)(nil)

// VenueService implements tinyamp.VenueService using SQLite.
type VenueService struct {
	db *DB
}

// NewVenueService creates a new VenueService.
func NewVenueService(db *DB) *VenueService {
	return &VenueService{db: db}
}

// FindVenueBySlug retrieves a venue by its slug.
func (s *VenueService) FindVenueBySlug(ctx context.Context, slug string) (*tinyamp.Venue, error) {
	var venue tinyamp.Venue
	var photoURLs, createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, slug, address, city, website_url, place_id, rating, review_count, photo_urls, created_at
		FROM venues
		WHERE slug = ?
	`, slug).Scan(&venue.ID, &venue.Name, &venue.Slug, &venue.Address, &venue.City,
		&venue.WebsiteURL, &venue.PlaceID, &venue.Rating, &venue.ReviewCount, &photoURLs, &createdAt)

	if err == sql.ErrNoRows {
		return nil, tinyamp.Errorf(tinyamp.ENOTFOUND, "venue not found")
	}
	if err != nil {
		return nil, err
	}

	venue.PhotoURLs = splitList(photoURLs)
	venue.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &venue, nil
}

// CreateVenue creates a new venue.
func (s *VenueService) CreateVenue(ctx context.Context, venue *tinyamp.Venue) error {
	if err := venue.Validate(); err != nil {
		return err
	}

	venue.ID = uuid.New().String()
	venue.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO venues (id, name, slug, address, city, website_url, place_id, rating, review_count, photo_urls, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, venue.ID, venue.Name, venue.Slug, venue.Address, venue.City, venue.WebsiteURL,
		venue.PlaceID, venue.Rating, venue.ReviewCount, joinList(venue.PhotoURLs),
		venue.CreatedAt.Format(time.RFC3339))

	return err
}

// FindVenues retrieves all venues ordered by name.
func (s *VenueService) FindVenues(ctx context.Context) ([]*tinyamp.Venue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, slug, address, city, website_url, place_id, rating, review_count, photo_urls, created_at
		FROM venues
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []*tinyamp.Venue
	for rows.Next() {
		var venue tinyamp.Venue
		var photoURLs, createdAt string

		if err := rows.Scan(&venue.ID, &venue.Name, &venue.Slug, &venue.Address, &venue.City,
			&venue.WebsiteURL, &venue.PlaceID, &venue.Rating, &venue.ReviewCount,
			&photoURLs, &createdAt); err != nil {
			return nil, err
		}

		venue.PhotoURLs = splitList(photoURLs)
		venue.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		venues = append(venues, &venue)
	}

	return venues, rows.Err()
}
