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
var _ tinyamp.ArtistService = (*ArtistService)(nil)

// ArtistService implements tinyamp.ArtistService using SQLite.
//
// Lookups are case-insensitive on the stored name. "Japanese Breakfast"
// and "japanese breakfast" are the same artist; "Björk" and "Bjork" are
// not, no accent folding is applied.
type ArtistService struct {
	db *DB
}

// NewArtistService creates a new ArtistService.
func NewArtistService(db *DB) *ArtistService {
	return &ArtistService{db: db}
}

// FindArtistByName retrieves an artist by exact case-insensitive name match.
func (s *ArtistService) FindArtistByName(ctx context.Context, name string) (*tinyamp.Artist, error) {
	var artist tinyamp.Artist
	var genreTags, createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, image_url, bio, genre_tags, created_at
		FROM artists
		WHERE name_lower = ?
	`, strings.ToLower(name)).Scan(&artist.ID, &artist.Name, &artist.ImageURL,
		&artist.Bio, &genreTags, &createdAt)

	if err == sql.ErrNoRows {
		return nil, tinyamp.Errorf(tinyamp.ENOTFOUND, "artist not found")
	}
	if err != nil {
		return nil, err
	}

	artist.GenreTags = splitList(genreTags)
	artist.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &artist, nil
}

// CreateArtist creates a new artist.
func (s *ArtistService) CreateArtist(ctx context.Context, artist *tinyamp.Artist) error {
	if err := artist.Validate(); err != nil {
		return err
	}

	artist.ID = uuid.New().String()
	artist.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO artists (id, name, name_lower, image_url, bio, genre_tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, artist.ID, artist.Name, strings.ToLower(artist.Name), artist.ImageURL,
		artist.Bio, joinList(artist.GenreTags), artist.CreatedAt.Format(time.RFC3339))

	return err
}
