package goquery_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tagoquery "github.com/tinyamp/tinyamp/goquery"
)

// stubContent is a MainContentExtractor returning canned text.
type stubContent struct {
	text string
	err  error
}

func (s *stubContent) MainText(string) (string, error) {
	return s.text, s.err
}

func TestTextExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("finds capitalized runs near a date match", func(t *testing.T) {
		t.Parallel()

		e := tagoquery.NewTextExtractor(nil)
		html := `<html><body><p>Japanese Breakfast doors 7pm $25 August 20, 2025 at the venue</p></body></html>`

		candidates, err := e.Extract(html, independent)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Contains(t, candidates[0].MatchedText, "Japanese Breakfast")
		assert.Equal(t, "August 20, 2025", candidates[0].MatchedDateText)
		assert.Equal(t, "fulltext", candidates[0].Strategy)
		assert.Contains(t, candidates[0].Context, "doors 7pm")
	})

	t.Run("skips script and style content", func(t *testing.T) {
		t.Parallel()

		e := tagoquery.NewTextExtractor(nil)
		html := `<html><head><style>.x{color:red}</style></head><body>
		<script>var hidden = "Fake Band 1/1/2025";</script>
		<p>No events listed.</p></body></html>`

		candidates, err := e.Extract(html, independent)

		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("yields one candidate per date match", func(t *testing.T) {
		t.Parallel()

		e := tagoquery.NewTextExtractor(nil)
		html := `<p>Alvvays plays August 20, 2025.</p>` +
			strings.Repeat(`<p>filler paragraph text between the two listings</p>`, 40) +
			`<p>Horsegirl plays September 1, 2025.</p>`

		candidates, err := e.Extract(html, independent)

		require.NoError(t, err)
		require.Len(t, candidates, 2)
		assert.Equal(t, "August 20, 2025", candidates[0].MatchedDateText)
		assert.Equal(t, "September 1, 2025", candidates[1].MatchedDateText)
	})

	t.Run("uses main-content extraction when available", func(t *testing.T) {
		t.Parallel()

		e := tagoquery.NewTextExtractor(&stubContent{
			text: "Mannequin Pussy live 9/12/2025 tickets at the door",
		})

		candidates, err := e.Extract("<html><body>nav junk</body></html>", independent)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Contains(t, candidates[0].MatchedText, "Mannequin Pussy")
	})

	t.Run("falls back to visible text when content extraction fails", func(t *testing.T) {
		t.Parallel()

		e := tagoquery.NewTextExtractor(&stubContent{err: assert.AnError})
		html := `<p>Alvvays plays August 20, 2025.</p>`

		candidates, err := e.Extract(html, independent)

		require.NoError(t, err)
		assert.Len(t, candidates, 1)
	})

	t.Run("retains at least 100 characters of context when available", func(t *testing.T) {
		t.Parallel()

		e := tagoquery.NewTextExtractor(nil)
		html := `<p>` + strings.Repeat("before ", 30) + `Alvvays August 20, 2025 ` +
			strings.Repeat("after ", 30) + `</p>`

		candidates, err := e.Extract(html, independent)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.GreaterOrEqual(t, len(candidates[0].Context), 100)
	})
}
