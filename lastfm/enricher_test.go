package lastfm_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinyamp/tinyamp"
	"github.com/tinyamp/tinyamp/lastfm"
)

func TestEnricher_EnrichArtist(t *testing.T) {
	t.Parallel()

	t.Run("returns artist metadata", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Japanese Breakfast", r.URL.Query().Get("artist"))
			fmt.Fprint(w, `{
				"artist": {
					"name": "Japanese Breakfast",
					"image": [
						{"#text": "https://example.com/small.jpg", "size": "small"},
						{"#text": "https://example.com/large.jpg", "size": "large"}
					],
					"tags": {"tag": [{"name": "Indie Pop"}, {"name": "dream pop"}]},
					"bio": {"summary": "Japanese Breakfast is a band. <a href=\"https://www.last.fm/music\">Read more</a>"}
				}
			}`)
		}))
		defer srv.Close()

		e := lastfm.NewEnricher("test-key", srv.Client(), lastfm.WithBaseURL(srv.URL))
		enrichment, err := e.EnrichArtist(context.Background(), "Japanese Breakfast")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/large.jpg", enrichment.ImageURL)
		assert.Equal(t, []string{"indie pop", "dream pop"}, enrichment.GenreTags)
		assert.Equal(t, "Japanese Breakfast is a band.", enrichment.Bio)
	})

	t.Run("unknown artist is not found", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"error": 6, "message": "The artist you supplied could not be found"}`)
		}))
		defer srv.Close()

		e := lastfm.NewEnricher("test-key", srv.Client(), lastfm.WithBaseURL(srv.URL))
		_, err := e.EnrichArtist(context.Background(), "zzzzz-nobody")

		require.Error(t, err)
		assert.Equal(t, tinyamp.ENOTFOUND, tinyamp.ErrorCode(err))
	})

	t.Run("missing API key is unavailable", func(t *testing.T) {
		t.Parallel()

		e := lastfm.NewEnricher("", nil)
		_, err := e.EnrichArtist(context.Background(), "Japanese Breakfast")

		require.Error(t, err)
		assert.Equal(t, tinyamp.EUNAVAILABLE, tinyamp.ErrorCode(err))
	})
}
