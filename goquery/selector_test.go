package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tagoquery "github.com/tinyamp/tinyamp/goquery"
)

func TestSelectorExtractor_Extract(t *testing.T) {
	t.Parallel()

	e := tagoquery.NewSelectorExtractor()

	t.Run("extracts from event-class blocks", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
		<div class="event-listing">
			<h3>Japanese Breakfast</h3>
			<p>Doors 7pm, $25 advance. August 20, 2025. All ages. This show is
			part of our late summer calendar, come early for the opener.</p>
		</div>
		</body></html>`

		candidates, err := e.Extract(html, independent)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "Japanese Breakfast", candidates[0].MatchedText)
		assert.Equal(t, "August 20, 2025", candidates[0].MatchedDateText)
		assert.Equal(t, "selector", candidates[0].Strategy)
	})

	t.Run("skips blocks without a date", func(t *testing.T) {
		t.Parallel()

		html := `<div class="event-listing"><h3>Coming Soon</h3><p>Check back later.</p></div>`

		candidates, err := e.Extract(html, independent)

		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("skips blocks without a title-shaped child", func(t *testing.T) {
		t.Parallel()

		html := `<div class="show-block">8/20/2025</div>`

		candidates, err := e.Extract(html, independent)

		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("venue-configured selectors are tried first", func(t *testing.T) {
		t.Parallel()

		cfg := independent
		cfg.Selectors = []string{".calendar-cell"}

		html := `<div class="calendar-cell"><a href="/e/1">Alvvays</a> 9/1/2025 doors at eight,
		tickets twenty dollars, this is the rescheduled date for the spring appearance</div>`

		candidates, err := e.Extract(html, cfg)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "Alvvays", candidates[0].MatchedText)
		assert.Equal(t, "9/1/2025", candidates[0].MatchedDateText)
	})

	t.Run("does not yield the same element twice across selectors", func(t *testing.T) {
		t.Parallel()

		// Matches both [class*="event"] and [class*="listing"].
		html := `<div class="event-listing">
			<h3>Alvvays</h3>
			<p>September 1, 2025 — with special guests, doors at seven o'clock,
			all the usual calendar boilerplate lives in this paragraph.</p>
		</div>`

		candidates, err := e.Extract(html, independent)

		require.NoError(t, err)
		assert.Len(t, candidates, 1)
	})
}
