package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinyamp/tinyamp"
	"github.com/tinyamp/tinyamp/sqlite"
)

func TestArtistService(t *testing.T) {
	t.Parallel()

	t.Run("creates and finds case-insensitively", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewArtistService(db)
		ctx := context.Background()

		artist := &tinyamp.Artist{Name: "Japanese Breakfast", GenreTags: []string{"indie pop"}}
		require.NoError(t, s.CreateArtist(ctx, artist))
		assert.NotEmpty(t, artist.ID)

		found, err := s.FindArtistByName(ctx, "JAPANESE BREAKFAST")
		require.NoError(t, err)
		assert.Equal(t, artist.ID, found.ID)
		// Original capitalization is preserved.
		assert.Equal(t, "Japanese Breakfast", found.Name)
		assert.Equal(t, []string{"indie pop"}, found.GenreTags)
	})

	t.Run("diacritic variants are distinct artists", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewArtistService(db)
		ctx := context.Background()

		require.NoError(t, s.CreateArtist(ctx, &tinyamp.Artist{Name: "Björk"}))

		_, err := s.FindArtistByName(ctx, "Bjork")

		require.Error(t, err)
		assert.Equal(t, tinyamp.ENOTFOUND, tinyamp.ErrorCode(err))
	})

	t.Run("unknown name is not found", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewArtistService(db)

		_, err := s.FindArtistByName(context.Background(), "Nobody")

		require.Error(t, err)
		assert.Equal(t, tinyamp.ENOTFOUND, tinyamp.ErrorCode(err))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewArtistService(db)

		err := s.CreateArtist(context.Background(), &tinyamp.Artist{})

		require.Error(t, err)
		assert.Equal(t, tinyamp.EINVALID, tinyamp.ErrorCode(err))
	})
}
