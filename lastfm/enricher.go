// Package lastfm enriches artists with metadata from the Last.fm API.
package lastfm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/tinyamp/tinyamp"
)

// DefaultBaseURL is the Last.fm API endpoint.
const DefaultBaseURL = "https://ws.audioscrobbler.com/2.0/"

// maxGenreTags bounds how many tags are kept per artist.
const maxGenreTags = 5

// Ensure Enricher implements tinyamp.ArtistEnricher at compile time.
var _ tinyamp.ArtistEnricher = (*Enricher)(nil)

// Enricher looks up artist metadata via artist.getInfo. Failures are
// expected and callers degrade to no enrichment.
type Enricher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithBaseURL overrides the API endpoint. Used in tests.
func WithBaseURL(u string) Option {
	return func(e *Enricher) {
		e.baseURL = u
	}
}

// NewEnricher creates an Enricher with the given API key. If client is
// nil, http.DefaultClient is used.
func NewEnricher(apiKey string, client *http.Client, opts ...Option) *Enricher {
	if client == nil {
		client = http.DefaultClient
	}
	e := &Enricher{apiKey: apiKey, baseURL: DefaultBaseURL, client: client}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type artistInfoResponse struct {
	Artist struct {
		Name  string `json:"name"`
		Image []struct {
			URL  string `json:"#text"`
			Size string `json:"size"`
		} `json:"image"`
		Tags struct {
			Tag []struct {
				Name string `json:"name"`
			} `json:"tag"`
		} `json:"tags"`
		Bio struct {
			Summary string `json:"summary"`
		} `json:"bio"`
	} `json:"artist"`
	Error int `json:"error"`
}

// EnrichArtist looks up artist metadata by name.
func (e *Enricher) EnrichArtist(ctx context.Context, name string) (*tinyamp.ArtistEnrichment, error) {
	if e.apiKey == "" {
		return nil, tinyamp.Errorf(tinyamp.EUNAVAILABLE, "no Last.fm API key configured")
	}

	q := url.Values{}
	q.Set("method", "artist.getinfo")
	q.Set("artist", name)
	q.Set("api_key", e.apiKey)
	q.Set("format", "json")
	q.Set("autocorrect", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, tinyamp.Errorf(tinyamp.EUNAVAILABLE, "artist lookup: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, tinyamp.Errorf(tinyamp.EUNAVAILABLE, "artist lookup: HTTP %d", resp.StatusCode)
	}

	var body artistInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if body.Error != 0 || body.Artist.Name == "" {
		return nil, tinyamp.Errorf(tinyamp.ENOTFOUND, "no artist found for %q", name)
	}

	enrichment := &tinyamp.ArtistEnrichment{
		Bio: stripBioLink(body.Artist.Bio.Summary),
	}
	// Prefer the largest image available.
	for _, img := range body.Artist.Image {
		if img.URL != "" {
			enrichment.ImageURL = img.URL
		}
	}
	for i, tag := range body.Artist.Tags.Tag {
		if i == maxGenreTags {
			break
		}
		enrichment.GenreTags = append(enrichment.GenreTags, strings.ToLower(tag.Name))
	}

	return enrichment, nil
}

// stripBioLink drops the trailing "Read more on Last.fm" anchor that
// artist.getInfo appends to every summary.
func stripBioLink(summary string) string {
	if i := strings.Index(summary, `<a href="https://www.last.fm`); i >= 0 {
		summary = summary[:i]
	}
	return strings.TrimSpace(summary)
}
