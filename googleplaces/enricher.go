// Package googleplaces enriches venues with place metadata from the
// Google Places API.
package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tinyamp/tinyamp"
)

// DefaultBaseURL is the Places API endpoint prefix.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// maxPhotos bounds how many photo references are kept per venue.
const maxPhotos = 3

// Ensure Enricher implements tinyamp.PlaceEnricher at compile time.
var _ tinyamp.PlaceEnricher = (*Enricher)(nil)

// Enricher looks up venue place metadata. Failures are expected and
// callers degrade to no enrichment; the pipeline never blocks on this.
type Enricher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithBaseURL overrides the API endpoint prefix. Used in tests.
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

type findPlaceResponse struct {
	Status     string `json:"status"`
	Candidates []struct {
		PlaceID          string  `json:"place_id"`
		Rating           float64 `json:"rating"`
		UserRatingsTotal int     `json:"user_ratings_total"`
		Photos           []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"candidates"`
}

// EnrichVenue looks up place metadata by venue name and address.
func (e *Enricher) EnrichVenue(ctx context.Context, name, address string) (*tinyamp.PlaceEnrichment, error) {
	if e.apiKey == "" {
		return nil, tinyamp.Errorf(tinyamp.EUNAVAILABLE, "no Places API key configured")
	}

	q := url.Values{}
	q.Set("input", name+" "+address)
	q.Set("inputtype", "textquery")
	q.Set("fields", "place_id,rating,user_ratings_total,photos")
	q.Set("key", e.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		e.baseURL+"/findplacefromtext/json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, tinyamp.Errorf(tinyamp.EUNAVAILABLE, "places lookup: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, tinyamp.Errorf(tinyamp.EUNAVAILABLE, "places lookup: HTTP %d", resp.StatusCode)
	}

	var body findPlaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if body.Status != "OK" || len(body.Candidates) == 0 {
		return nil, tinyamp.Errorf(tinyamp.ENOTFOUND, "no place found for %q", name)
	}

	c := body.Candidates[0]
	enrichment := &tinyamp.PlaceEnrichment{
		PlaceID:     c.PlaceID,
		Rating:      c.Rating,
		ReviewCount: c.UserRatingsTotal,
	}
	for i, p := range c.Photos {
		if i == maxPhotos {
			break
		}
		enrichment.PhotoURLs = append(enrichment.PhotoURLs, e.photoURL(p.PhotoReference))
	}

	return enrichment, nil
}

// photoURL builds a fetchable photo URL from a photo reference.
func (e *Enricher) photoURL(ref string) string {
	return fmt.Sprintf("%s/photo?maxwidth=800&photo_reference=%s&key=%s", e.baseURL, ref, e.apiKey)
}
