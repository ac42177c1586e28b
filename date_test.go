package tinyamp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinyamp/tinyamp"
)

func TestParseEventDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)
	july29 := time.Date(2025, time.July, 29, 0, 0, 0, 0, time.UTC)

	t.Run("equivalent spellings yield the same calendar date", func(t *testing.T) {
		t.Parallel()

		for _, text := range []string{
			"July 29, 2025",
			"July 29 2025",
			"7/29/2025",
			"7.29.2025",
			"2025-7-29",
			"Jul 29, 2025",
			"july 29th 2025",
		} {
			d, err := tinyamp.ParseEventDate(text, now)
			require.NoError(t, err, "parsing %q", text)
			assert.True(t, july29.Equal(d), "parsing %q got %s", text, d)
		}
	})

	t.Run("strips ordinal suffixes", func(t *testing.T) {
		t.Parallel()

		for _, text := range []string{
			"August 1st, 2025", "August 2nd 2025", "August 3rd, 2025", "August 4th 2025",
		} {
			d, err := tinyamp.ParseEventDate(text, now)
			require.NoError(t, err, "parsing %q", text)
			assert.Equal(t, time.August, d.Month())
		}
	})

	t.Run("finds a date embedded in listing text", func(t *testing.T) {
		t.Parallel()

		d, err := tinyamp.ParseEventDate("doors 7pm $25 August 20 2025", now)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("rejects a parseable date outside the plausible window", func(t *testing.T) {
		t.Parallel()

		_, err := tinyamp.ParseEventDate("January 15, 1999", now)

		require.Error(t, err)
		assert.Equal(t, tinyamp.EINVALID, tinyamp.ErrorCode(err))
	})

	t.Run("rejects dates too far in the future", func(t *testing.T) {
		t.Parallel()

		_, err := tinyamp.ParseEventDate("July 2, 2026", now)

		require.Error(t, err)
	})

	t.Run("accepts dates just inside the window", func(t *testing.T) {
		t.Parallel()

		_, err := tinyamp.ParseEventDate("February 1, 2025", now)
		assert.NoError(t, err)

		_, err = tinyamp.ParseEventDate("June 30, 2026", now)
		assert.NoError(t, err)
	})

	t.Run("rejects unparseable input", func(t *testing.T) {
		t.Parallel()

		for _, text := range []string{"", "tickets on sale soon", "June 31, 2025", "13/40/2025"} {
			_, err := tinyamp.ParseEventDate(text, now)
			assert.Error(t, err, "expected %q to be rejected", text)
		}
	})
}

func TestWithinEventWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, tinyamp.WithinEventWindow(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, tinyamp.WithinEventWindow(time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, tinyamp.WithinEventWindow(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, tinyamp.WithinEventWindow(time.Date(2026, time.July, 2, 0, 0, 0, 0, time.UTC), now))
}
