package ingest_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinyamp/tinyamp"
	"github.com/tinyamp/tinyamp/ingest"
	"github.com/tinyamp/tinyamp/mock"
)

// memoryStore backs the service mocks with maps so idempotence can be
// exercised across multiple pipeline runs.
type memoryStore struct {
	venues  map[string]*tinyamp.Venue
	artists map[string]*tinyamp.Artist
	events  map[string]*tinyamp.Event
	links   []*tinyamp.EventArtist
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		venues:  make(map[string]*tinyamp.Venue),
		artists: make(map[string]*tinyamp.Artist),
		events:  make(map[string]*tinyamp.Event),
	}
}

func (m *memoryStore) venueService() *mock.VenueService {
	return &mock.VenueService{
		FindVenueBySlugFn: func(_ context.Context, slug string) (*tinyamp.Venue, error) {
			if v, ok := m.venues[slug]; ok {
				return v, nil
			}
			return nil, tinyamp.Errorf(tinyamp.ENOTFOUND, "venue not found")
		},
		CreateVenueFn: func(_ context.Context, v *tinyamp.Venue) error {
			v.ID = "venue-" + v.Slug
			m.venues[v.Slug] = v
			return nil
		},
	}
}

func (m *memoryStore) artistService() *mock.ArtistService {
	return &mock.ArtistService{
		FindArtistByNameFn: func(_ context.Context, name string) (*tinyamp.Artist, error) {
			if a, ok := m.artists[strings.ToLower(name)]; ok {
				return a, nil
			}
			return nil, tinyamp.Errorf(tinyamp.ENOTFOUND, "artist not found")
		},
		CreateArtistFn: func(_ context.Context, a *tinyamp.Artist) error {
			a.ID = "artist-" + strings.ToLower(a.Name)
			m.artists[strings.ToLower(a.Name)] = a
			return nil
		},
	}
}

func (m *memoryStore) eventService() *mock.EventService {
	return &mock.EventService{
		FindEventByTitleAndDateFn: func(_ context.Context, title string, date time.Time) (*tinyamp.Event, error) {
			if e, ok := m.events[tinyamp.DedupKey(title, date)]; ok {
				return e, nil
			}
			return nil, tinyamp.Errorf(tinyamp.ENOTFOUND, "event not found")
		},
		CreateEventFn: func(_ context.Context, e *tinyamp.Event) error {
			key := tinyamp.DedupKey(e.Title, e.Date)
			if _, ok := m.events[key]; ok {
				return tinyamp.Errorf(tinyamp.ECONFLICT, "event already exists")
			}
			e.ID = "event-" + e.Slug
			m.events[key] = e
			return nil
		},
		LinkEventArtistFn: func(_ context.Context, link *tinyamp.EventArtist) error {
			m.links = append(m.links, link)
			return nil
		},
	}
}

// fixedNow keeps the event window stable regardless of when tests run.
var fixedNow = time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

func newPipeline(store *memoryStore, fetcher tinyamp.Fetcher, extractor tinyamp.Extractor) *ingest.Pipeline {
	return &ingest.Pipeline{
		Static:    fetcher,
		Extractor: extractor,
		Venues:    store.venueService(),
		Artists:   store.artistService(),
		Events:    store.eventService(),
		// Serial execution keeps the map-backed store race-free.
		Concurrency: 1,
		RetryDelays: []time.Duration{},
		Now:         func() time.Time { return fixedNow },
	}
}

var independent = tinyamp.VenueConfig{
	Name: "The Independent",
	Slug: "the-independent",
	URLs: []string{"https://www.theindependentsf.com/"},
}

func staticHTML(html string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) { return html, nil },
	}
}

func extractorOf(raws ...tinyamp.RawCandidate) *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(string, tinyamp.VenueConfig) ([]tinyamp.RawCandidate, error) {
			return raws, nil
		},
	}
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	t.Run("creates event with venue artists and links", func(t *testing.T) {
		t.Parallel()

		store := newMemoryStore()
		p := newPipeline(store, staticHTML("<html></html>"), extractorOf(tinyamp.RawCandidate{
			MatchedText:     "Japanese Breakfast, Mini Trees",
			MatchedDateText: "August 20, 2025",
			Context:         "Japanese Breakfast with Mini Trees, doors 7pm",
		}))

		result, err := p.Run(context.Background(), []tinyamp.VenueConfig{independent})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Created)
		assert.Equal(t, 0, result.SkippedDuplicate)

		require.Len(t, store.events, 1)
		event := store.events[tinyamp.DedupKey("Japanese Breakfast, Mini Trees at The Independent",
			time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC))]
		require.NotNil(t, event)
		assert.Equal(t, "venue-the-independent", event.VenueID)
		assert.Equal(t, tinyamp.DefaultPrice, event.Price)
		assert.True(t, event.PriceIsEstimated)
		assert.True(t, event.IsActive)
		assert.NotEmpty(t, event.RawTextHash)

		require.Len(t, store.links, 2)
		assert.True(t, store.links[0].IsHeadliner)
		assert.Equal(t, 0, store.links[0].Position)
		assert.False(t, store.links[1].IsHeadliner)
		assert.Equal(t, 1, store.links[1].Position)
	})

	t.Run("second run is idempotent", func(t *testing.T) {
		t.Parallel()

		store := newMemoryStore()
		p := newPipeline(store, staticHTML("<html></html>"), extractorOf(tinyamp.RawCandidate{
			MatchedText:     "Japanese Breakfast",
			MatchedDateText: "August 20, 2025",
		}))

		first, err := p.Run(context.Background(), []tinyamp.VenueConfig{independent})
		require.NoError(t, err)
		assert.Equal(t, 1, first.Created)

		second, err := p.Run(context.Background(), []tinyamp.VenueConfig{independent})
		require.NoError(t, err)
		assert.Equal(t, 0, second.Created)
		assert.Equal(t, 1, second.SkippedDuplicate)

		assert.Len(t, store.events, 1)
		assert.Len(t, store.artists, 1)
		assert.Len(t, store.links, 1)
	})

	t.Run("jargon-only listing produces no event", func(t *testing.T) {
		t.Parallel()

		store := newMemoryStore()
		p := newPipeline(store, staticHTML("<html></html>"), extractorOf(tinyamp.RawCandidate{
			MatchedText:     "Tuesday doors 8PM $15 advance ALL AGES",
			MatchedDateText: "August 20, 2025",
		}))

		result, err := p.Run(context.Background(), []tinyamp.VenueConfig{independent})

		require.NoError(t, err)
		assert.Equal(t, 0, result.Created)
		assert.Equal(t, 1, result.SkippedInvalid)
		assert.Empty(t, store.events)
	})

	t.Run("stale dates are rejected", func(t *testing.T) {
		t.Parallel()

		store := newMemoryStore()
		p := newPipeline(store, staticHTML("<html></html>"), extractorOf(tinyamp.RawCandidate{
			MatchedText:     "Japanese Breakfast",
			MatchedDateText: "January 15, 1999",
		}))

		result, err := p.Run(context.Background(), []tinyamp.VenueConfig{independent})

		require.NoError(t, err)
		assert.Equal(t, 0, result.Created)
		assert.Equal(t, 1, result.SkippedInvalid)
	})

	t.Run("a failing page does not abort the venue or the run", func(t *testing.T) {
		t.Parallel()

		store := newMemoryStore()
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if strings.Contains(url, "bottomofthehill") {
					return "", tinyamp.Errorf(tinyamp.EUNAVAILABLE, "HTTP 503 for %s", url)
				}
				return "<html></html>", nil
			},
		}
		p := newPipeline(store, fetcher, extractorOf(tinyamp.RawCandidate{
			MatchedText:     "Deerhoof",
			MatchedDateText: "August 20, 2025",
		}))

		bottom := tinyamp.VenueConfig{
			Name: "Bottom of the Hill",
			Slug: "bottom-of-the-hill",
			URLs: []string{"https://www.bottomofthehill.com/calendar.html"},
		}

		result, err := p.Run(context.Background(), []tinyamp.VenueConfig{bottom, independent})

		require.NoError(t, err)
		assert.Equal(t, 1, result.PagesFailed)
		assert.Equal(t, 1, result.Created)
		assert.Len(t, store.events, 1)
	})

	t.Run("dynamic venues use the browser fetcher", func(t *testing.T) {
		t.Parallel()

		store := newMemoryStore()
		var staticCalls, dynamicCalls int
		p := newPipeline(store, &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				staticCalls++
				return "<html></html>", nil
			},
		}, extractorOf())
		p.Dynamic = &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				dynamicCalls++
				return "<html></html>", nil
			},
		}

		dynamic := independent
		dynamic.Dynamic = true

		_, err := p.Run(context.Background(), []tinyamp.VenueConfig{dynamic})

		require.NoError(t, err)
		assert.Equal(t, 0, staticCalls)
		assert.Equal(t, 1, dynamicCalls)
	})

	t.Run("dry run writes candidates and never persists", func(t *testing.T) {
		t.Parallel()

		store := newMemoryStore()
		p := newPipeline(store, staticHTML("<html></html>"), extractorOf(tinyamp.RawCandidate{
			MatchedText:     "Japanese Breakfast",
			MatchedDateText: "August 20, 2025",
		}))
		p.DryRun = true

		var written []tinyamp.EventCandidate
		p.Candidates = &mock.CandidateWriter{
			WriteCandidatesFn: func(_ context.Context, venueSlug string, candidates []tinyamp.EventCandidate) error {
				assert.Equal(t, "the-independent", venueSlug)
				written = candidates
				return nil
			},
		}

		result, err := p.Run(context.Background(), []tinyamp.VenueConfig{independent})

		require.NoError(t, err)
		assert.Equal(t, 0, result.Created)
		require.Len(t, written, 1)
		assert.Equal(t, "Japanese Breakfast at The Independent", written[0].Title)
		assert.Empty(t, store.events)
		assert.Empty(t, store.venues)
	})

	t.Run("duplicate raw candidates collapse to one event", func(t *testing.T) {
		t.Parallel()

		store := newMemoryStore()
		raw := tinyamp.RawCandidate{
			MatchedText:     "Japanese Breakfast",
			MatchedDateText: "August 20, 2025",
		}
		p := newPipeline(store, staticHTML("<html></html>"), extractorOf(raw, raw, raw))

		result, err := p.Run(context.Background(), []tinyamp.VenueConfig{independent})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Created)
		assert.Len(t, store.events, 1)
	})

	t.Run("sitemap discovery extends the URL set", func(t *testing.T) {
		t.Parallel()

		store := newMemoryStore()
		var fetched []string
		p := newPipeline(store, &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetched = append(fetched, url)
				return "<html></html>", nil
			},
		}, extractorOf())
		p.Discoverer = &mock.EventURLDiscoverer{
			DiscoverEventURLsFn: func(context.Context, string) ([]string, error) {
				return []string{"https://thechapelsf.com/event/one", "https://thechapelsf.com/event/two"}, nil
			},
		}

		chapel := tinyamp.VenueConfig{
			Name:            "The Chapel",
			Slug:            "the-chapel",
			URLs:            []string{"https://thechapelsf.com/music/"},
			DiscoverSitemap: true,
		}

		_, err := p.Run(context.Background(), []tinyamp.VenueConfig{chapel})

		require.NoError(t, err)
		assert.Len(t, fetched, 3)
	})

	t.Run("artist failure leaves no partial event behind", func(t *testing.T) {
		t.Parallel()

		store := newMemoryStore()
		p := newPipeline(store, staticHTML("<html></html>"), extractorOf(tinyamp.RawCandidate{
			MatchedText:     "Japanese Breakfast",
			MatchedDateText: "August 20, 2025",
		}))

		failOnce := true
		artists := store.artistService()
		create := artists.CreateArtistFn
		artists.CreateArtistFn = func(ctx context.Context, a *tinyamp.Artist) error {
			if failOnce {
				failOnce = false
				return tinyamp.Errorf(tinyamp.EINTERNAL, "database is locked")
			}
			return create(ctx, a)
		}
		p.Artists = artists

		first, err := p.Run(context.Background(), []tinyamp.VenueConfig{independent})
		require.NoError(t, err)
		assert.Equal(t, 0, first.Created)
		assert.Equal(t, 1, first.CandidatesFailed)
		assert.Empty(t, store.events)
		assert.Empty(t, store.links)

		second, err := p.Run(context.Background(), []tinyamp.VenueConfig{independent})
		require.NoError(t, err)
		assert.Equal(t, 1, second.Created)
		assert.Equal(t, 0, second.SkippedDuplicate)
		assert.Len(t, store.events, 1)
		assert.Len(t, store.links, 1)
	})

	t.Run("a failing candidate does not cost the rest of the batch", func(t *testing.T) {
		t.Parallel()

		store := newMemoryStore()
		p := newPipeline(store, staticHTML("<html></html>"), extractorOf(
			tinyamp.RawCandidate{
				MatchedText:     "Deerhoof",
				MatchedDateText: "August 20, 2025",
			},
			tinyamp.RawCandidate{
				MatchedText:     "Japanese Breakfast",
				MatchedDateText: "August 21, 2025",
			},
		))

		events := store.eventService()
		create := events.CreateEventFn
		events.CreateEventFn = func(ctx context.Context, e *tinyamp.Event) error {
			if strings.HasPrefix(e.Title, "Deerhoof") {
				return tinyamp.Errorf(tinyamp.EINTERNAL, "database is locked")
			}
			return create(ctx, e)
		}
		p.Events = events

		result, err := p.Run(context.Background(), []tinyamp.VenueConfig{independent})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Created)
		assert.Equal(t, 1, result.CandidatesFailed)
		assert.Len(t, store.events, 1)
	})

	t.Run("enrichment failures degrade to bare records", func(t *testing.T) {
		t.Parallel()

		store := newMemoryStore()
		p := newPipeline(store, staticHTML("<html></html>"), extractorOf(tinyamp.RawCandidate{
			MatchedText:     "Japanese Breakfast",
			MatchedDateText: "August 20, 2025",
		}))
		p.Places = &mock.PlaceEnricher{
			EnrichVenueFn: func(context.Context, string, string) (*tinyamp.PlaceEnrichment, error) {
				return nil, tinyamp.Errorf(tinyamp.EUNAVAILABLE, "no API key")
			},
		}
		p.ArtistInfo = &mock.ArtistEnricher{
			EnrichArtistFn: func(context.Context, string) (*tinyamp.ArtistEnrichment, error) {
				return nil, tinyamp.Errorf(tinyamp.EUNAVAILABLE, "no API key")
			},
		}

		result, err := p.Run(context.Background(), []tinyamp.VenueConfig{independent})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Created)
		venue := store.venues["the-independent"]
		require.NotNil(t, venue)
		assert.Empty(t, venue.PlaceID)
		artist := store.artists["japanese breakfast"]
		require.NotNil(t, artist)
		assert.Empty(t, artist.Bio)
	})
}
