// Package ingest orchestrates scraping venue listings into stored
// events. It coordinates fetching, extraction, classification, date
// normalization, assembly, deduplication, and persistence.
package ingest

import (
	"context"
	"encoding/hex"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/tinyamp/tinyamp"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is how many venues are scraped in parallel.
const DefaultConcurrency = 4

// Pipeline orchestrates one ingestion run across configured venues.
// Static is required; every other collaborator marked optional degrades
// gracefully when nil.
type Pipeline struct {
	Static     tinyamp.Fetcher
	Dynamic    tinyamp.Fetcher            // optional; Static is used when nil
	Extractor  tinyamp.Extractor
	Discoverer tinyamp.EventURLDiscoverer // optional sitemap discovery
	Classifier *tinyamp.Classifier        // defaults to NewClassifier

	Venues  tinyamp.VenueService
	Artists tinyamp.ArtistService
	Events  tinyamp.EventService

	Places       tinyamp.PlaceEnricher        // optional venue enrichment
	ArtistInfo   tinyamp.ArtistEnricher       // optional artist enrichment
	Descriptions tinyamp.DescriptionConverter // optional description markdown
	Candidates   tinyamp.CandidateWriter      // optional dry-run artifacts

	RateLimiter tinyamp.DomainLimiter // optional per-domain pacing
	Logger      *slog.Logger          // optional

	Concurrency int
	RetryDelays []time.Duration

	// DryRun assembles and writes candidates but never touches the
	// persistence services.
	DryRun bool

	// Now is swappable for tests. Defaults to time.Now.
	Now func() time.Time
}

// Result holds the outcome of an ingestion run.
type Result struct {
	VenuesScraped    int
	Created          int
	SkippedDuplicate int
	SkippedInvalid   int
	PagesFailed      int
	CandidatesFailed int
	VenuesFailed     int
}

// add merges a per-venue result under the caller's lock.
func (r *Result) add(v Result) {
	r.VenuesScraped += v.VenuesScraped
	r.Created += v.Created
	r.SkippedDuplicate += v.SkippedDuplicate
	r.SkippedInvalid += v.SkippedInvalid
	r.PagesFailed += v.PagesFailed
	r.CandidatesFailed += v.CandidatesFailed
	r.VenuesFailed += v.VenuesFailed
}

// Run scrapes every configured venue. A failing venue is counted and
// skipped; it never aborts the run. The returned error covers only
// context cancellation.
func (p *Pipeline) Run(ctx context.Context, cfgs []tinyamp.VenueConfig) (*Result, error) {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var mu sync.Mutex
	var total Result

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, cfg := range cfgs {
		cfg := cfg
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			venueResult, err := p.ingestVenue(gctx, cfg)
			if err != nil {
				p.logf("venue failed", "venue", cfg.Slug, "err", err)
				venueResult.VenuesFailed++
			}

			mu.Lock()
			total.add(venueResult)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &total, nil
}

// ingestVenue runs the full pipeline for one venue. The returned Result
// counts whatever progress was made before any error.
func (p *Pipeline) ingestVenue(ctx context.Context, cfg tinyamp.VenueConfig) (Result, error) {
	var result Result

	if err := cfg.Validate(); err != nil {
		return result, err
	}
	result.VenuesScraped++

	classifier := p.Classifier
	if classifier == nil {
		classifier = tinyamp.NewClassifier()
	}
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}

	urls := append([]string(nil), cfg.URLs...)
	if cfg.DiscoverSitemap && p.Discoverer != nil {
		discovered, err := p.Discoverer.DiscoverEventURLs(ctx, cfg.URLs[0])
		if err != nil {
			// Discovery is best effort; the listing URLs still get scraped.
			p.logf("sitemap discovery failed", "venue", cfg.Slug, "err", err)
		} else {
			urls = append(urls, discovered...)
		}
	}

	assembler := tinyamp.NewAssembler()
	seen := tinyamp.NewSeenKeys()
	var kept []tinyamp.EventCandidate

	for _, pageURL := range urls {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		html, err := p.fetchPage(ctx, cfg, pageURL)
		if err != nil {
			result.PagesFailed++
			p.logf("page failed", "venue", cfg.Slug, "url", pageURL, "err", err)
			continue
		}

		raws, err := p.Extractor.Extract(html, cfg)
		if err != nil {
			result.PagesFailed++
			p.logf("extraction failed", "venue", cfg.Slug, "url", pageURL, "err", err)
			continue
		}

		var batch []tinyamp.EventCandidate
		for _, raw := range raws {
			candidate, ok := p.buildCandidate(classifier, assembler, cfg, raw, now, &result)
			if !ok {
				continue
			}
			batch = append(batch, candidate)
		}
		kept = append(kept, tinyamp.Dedupe(batch, seen)...)
	}

	if p.Candidates != nil {
		if err := p.Candidates.WriteCandidates(ctx, cfg.Slug, kept); err != nil {
			p.logf("candidate artifact failed", "venue", cfg.Slug, "err", err)
		}
	}
	if p.DryRun {
		return result, nil
	}

	venue, err := p.ensureVenue(ctx, cfg)
	if err != nil {
		return result, err
	}

	for _, candidate := range kept {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := p.persistCandidate(ctx, venue, candidate, &result); err != nil {
			// One candidate failing to persist never costs the rest of
			// the venue's batch.
			result.CandidatesFailed++
			p.logf("candidate failed", "venue", cfg.Slug, "title", candidate.Title, "err", err)
		}
	}

	return result, nil
}

// fetchPage fetches one URL with rate limiting and retry, choosing the
// browser-backed fetcher for dynamic venues.
func (p *Pipeline) fetchPage(ctx context.Context, cfg tinyamp.VenueConfig, pageURL string) (string, error) {
	fetcher := p.Static
	if cfg.Dynamic && p.Dynamic != nil {
		fetcher = p.Dynamic
	}

	if p.RateLimiter != nil {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			return "", tinyamp.Errorf(tinyamp.EINVALID, "invalid URL %q: %v", pageURL, err)
		}
		if err := p.RateLimiter.Wait(ctx, parsed.Host); err != nil {
			return "", err
		}
	}

	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, pageURL, fetcher.Fetch, nil, delays)
}

// buildCandidate turns one raw extraction into an assembled candidate.
// Rejections increment SkippedInvalid; they are the pipeline working as
// intended, not errors.
func (p *Pipeline) buildCandidate(classifier *tinyamp.Classifier, assembler *tinyamp.Assembler,
	cfg tinyamp.VenueConfig, raw tinyamp.RawCandidate, now time.Time, result *Result) (tinyamp.EventCandidate, bool) {

	date, err := tinyamp.ParseEventDate(raw.MatchedDateText, now)
	if err != nil || !tinyamp.WithinEventWindow(date, now) {
		result.SkippedInvalid++
		return tinyamp.EventCandidate{}, false
	}

	names := classifier.ClassifyAll(tinyamp.SplitArtistText(raw.MatchedText), cfg.Name)
	if len(names) == 0 {
		result.SkippedInvalid++
		return tinyamp.EventCandidate{}, false
	}

	return assembler.Assemble(cfg, names, date, raw.Context), true
}

// ensureVenue finds the stored venue or creates it from the config with
// best-effort place enrichment. Stored venues are never updated.
func (p *Pipeline) ensureVenue(ctx context.Context, cfg tinyamp.VenueConfig) (*tinyamp.Venue, error) {
	venue, err := p.Venues.FindVenueBySlug(ctx, cfg.Slug)
	if err == nil {
		return venue, nil
	}
	if tinyamp.ErrorCode(err) != tinyamp.ENOTFOUND {
		return nil, err
	}

	venue = &tinyamp.Venue{
		Name:       cfg.Name,
		Slug:       cfg.Slug,
		Address:    cfg.Address,
		City:       cfg.City,
		WebsiteURL: cfg.URLs[0],
	}

	if p.Places != nil {
		if enrichment, err := p.Places.EnrichVenue(ctx, cfg.Name, cfg.Address); err == nil {
			venue.PlaceID = enrichment.PlaceID
			venue.Rating = enrichment.Rating
			venue.ReviewCount = enrichment.ReviewCount
			venue.PhotoURLs = enrichment.PhotoURLs
		} else {
			p.logf("place enrichment failed", "venue", cfg.Slug, "err", err)
		}
	}

	if err := p.Venues.CreateVenue(ctx, venue); err != nil {
		return nil, err
	}
	return venue, nil
}

// persistCandidate stores one candidate behind the dedup gate, creating
// or reusing its artists and linking the bill. Artists are resolved
// before the event row is inserted: a stored event must never exist
// without its bill, and an artist failure here leaves nothing behind
// for the next run's dedup gate to skip over.
func (p *Pipeline) persistCandidate(ctx context.Context, venue *tinyamp.Venue,
	candidate tinyamp.EventCandidate, result *Result) error {

	if err := candidate.Validate(); err != nil {
		result.SkippedInvalid++
		return nil
	}

	_, err := p.Events.FindEventByTitleAndDate(ctx, candidate.Title, candidate.Date)
	if err == nil {
		result.SkippedDuplicate++
		return nil
	}
	if tinyamp.ErrorCode(err) != tinyamp.ENOTFOUND {
		return err
	}

	artists := make([]*tinyamp.Artist, 0, len(candidate.ArtistNames))
	for _, name := range candidate.ArtistNames {
		artist, err := p.ensureArtist(ctx, name)
		if err != nil {
			return err
		}
		artists = append(artists, artist)
	}

	event := &tinyamp.Event{
		Title:            candidate.Title,
		Slug:             candidate.Slug,
		VenueID:          venue.ID,
		VenueSlug:        venue.Slug,
		Date:             candidate.Date,
		Price:            candidate.Price,
		PriceIsEstimated: candidate.PriceIsEstimated,
		IsActive:         true,
		RawTextHash:      HashRawText(candidate.RawText),
	}
	if p.Descriptions != nil && candidate.RawText != "" {
		if desc, err := p.Descriptions.Convert(candidate.RawText); err == nil {
			event.Description = desc
		}
	}

	if err := p.Events.CreateEvent(ctx, event); err != nil {
		if tinyamp.ErrorCode(err) == tinyamp.ECONFLICT {
			result.SkippedDuplicate++
			return nil
		}
		return err
	}
	result.Created++

	for i, artist := range artists {
		link := &tinyamp.EventArtist{
			EventID:     event.ID,
			ArtistID:    artist.ID,
			IsHeadliner: i == 0,
			Position:    i,
		}
		if err := p.Events.LinkEventArtist(ctx, link); err != nil {
			if tinyamp.ErrorCode(err) != tinyamp.ECONFLICT {
				return err
			}
		}
	}

	return nil
}

// ensureArtist finds the stored artist by case-insensitive name or
// creates it with best-effort enrichment.
func (p *Pipeline) ensureArtist(ctx context.Context, name string) (*tinyamp.Artist, error) {
	artist, err := p.Artists.FindArtistByName(ctx, name)
	if err == nil {
		return artist, nil
	}
	if tinyamp.ErrorCode(err) != tinyamp.ENOTFOUND {
		return nil, err
	}

	artist = &tinyamp.Artist{Name: name}
	if p.ArtistInfo != nil {
		if enrichment, err := p.ArtistInfo.EnrichArtist(ctx, name); err == nil {
			artist.ImageURL = enrichment.ImageURL
			artist.Bio = enrichment.Bio
			artist.GenreTags = enrichment.GenreTags
		} else {
			p.logf("artist enrichment failed", "artist", name, "err", err)
		}
	}

	if err := p.Artists.CreateArtist(ctx, artist); err != nil {
		return nil, err
	}
	return artist, nil
}

// HashRawText computes the provenance hash stored on events, an xxHash
// of the scraped context the event was assembled from.
func HashRawText(raw string) string {
	if raw == "" {
		return ""
	}
	h := xxhash.Sum64String(raw)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

func (p *Pipeline) logf(msg string, args ...any) {
	if p.Logger != nil {
		p.Logger.Info(msg, args...)
	}
}
