package ingest_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinyamp/tinyamp"
	"github.com/tinyamp/tinyamp/ingest"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	noDelays := []time.Duration{0, 0, 0}

	t.Run("returns on first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (string, error) {
			calls++
			return "<html></html>", nil
		}

		html, err := ingest.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (string, error) {
			calls++
			if calls < 3 {
				return "", tinyamp.Errorf(tinyamp.EUNAVAILABLE, "HTTP 503")
			}
			return "<html></html>", nil
		}

		html, err := ingest.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error after exhausting attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (string, error) {
			calls++
			return "", tinyamp.Errorf(tinyamp.EUNAVAILABLE, "HTTP 503")
		}

		_, err := ingest.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays)

		require.Error(t, err)
		assert.Equal(t, tinyamp.EUNAVAILABLE, tinyamp.ErrorCode(err))
		assert.Equal(t, 4, calls) // 1 initial + 3 retries
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(context.Context, string) (string, error) {
			cancel()
			return "", tinyamp.Errorf(tinyamp.EUNAVAILABLE, "HTTP 503")
		}

		_, err := ingest.FetchWithRetryDelays(ctx, "https://example.com", fetch, nil, []time.Duration{time.Hour})

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("logs each retry", func(t *testing.T) {
		t.Parallel()

		var logged []string
		logger := func(format string, args ...any) {
			logged = append(logged, format)
		}
		fetch := func(context.Context, string) (string, error) {
			return "", tinyamp.Errorf(tinyamp.EUNAVAILABLE, "HTTP 503")
		}

		_, err := ingest.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, logger, noDelays)

		require.Error(t, err)
		assert.Len(t, logged, 3)
	})
}
