package tinyamp

import "context"

// Fetcher retrieves rendered HTML from venue URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// event calendars.
type Fetcher interface {
	// Fetch navigates to the URL and returns the page HTML.
	// The context controls timeout and cancellation. A page that never
	// settles must still return whatever content rendered before the
	// deadline rather than fail outright.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources (e.g., a browser process).
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter rate limits requests per domain. Venue sites are small
// and independently owned; polite pacing is per-host, not global.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context, domain string) error
}
