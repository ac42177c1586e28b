package slog_test

import (
	"bytes"
	"context"
	stdslog "log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinyamp/tinyamp"
	taslog "github.com/tinyamp/tinyamp/slog"
)

type stubFetcher struct {
	html string
	err  error
}

func (s *stubFetcher) Fetch(context.Context, string) (string, error) { return s.html, s.err }
func (s *stubFetcher) Close() error                                  { return nil }

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	t.Run("logs url and byte count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))
		f := taslog.NewLoggingFetcher(&stubFetcher{html: "<html></html>"}, logger)

		html, err := f.Fetch(context.Background(), "https://www.theindependentsf.com")

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Contains(t, buf.String(), "url=https://www.theindependentsf.com")
		assert.Contains(t, buf.String(), "bytes=13")
	})

	t.Run("logs errors from the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))
		f := taslog.NewLoggingFetcher(&stubFetcher{
			err: tinyamp.Errorf(tinyamp.EUNAVAILABLE, "HTTP 503"),
		}, logger)

		_, err := f.Fetch(context.Background(), "https://example.com")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "HTTP 503")
	})
}

type stubExtractor struct {
	candidates []tinyamp.RawCandidate
}

func (s *stubExtractor) Extract(string, tinyamp.VenueConfig) ([]tinyamp.RawCandidate, error) {
	return s.candidates, nil
}

func TestLoggingExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))
	e := taslog.NewLoggingExtractor(&stubExtractor{
		candidates: []tinyamp.RawCandidate{{MatchedText: "Alvvays"}},
	}, logger)

	candidates, err := e.Extract("<html></html>", tinyamp.VenueConfig{Slug: "the-independent"})

	require.NoError(t, err)
	assert.Len(t, candidates, 1)
	assert.Contains(t, buf.String(), "venue=the-independent")
	assert.Contains(t, buf.String(), "candidates=1")
}
