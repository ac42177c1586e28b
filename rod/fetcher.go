// Package rod provides a Chrome-backed implementation of tinyamp.Fetcher
// for venue sites that render their calendars with JavaScript.
package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/tinyamp/tinyamp"
)

// DefaultFetchTimeout is the default timeout for a full fetch.
// Kept consistent with http.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultRenderWait bounds how long Fetch waits for the page's load
// event before settling for whatever has rendered.
const DefaultRenderWait = 5 * time.Second

// Ensure Fetcher implements tinyamp.Fetcher at compile time.
var _ tinyamp.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. SPA calendar pages sometimes never fire their load event,
// so the render wait is bounded and Fetch returns the partially rendered
// document instead of failing.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager    *BrowserManager
	timeout    time.Duration
	renderWait time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the overall timeout for a fetch.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRenderWait sets how long to wait for the page load event.
// Defaults to DefaultRenderWait (5s) if not specified.
func WithRenderWait(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderWait = d
	}
}

// NewFetcher creates a new Fetcher backed by a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}

	f := &Fetcher{
		manager:    manager,
		timeout:    DefaultFetchTimeout,
		renderWait: DefaultRenderWait,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", tinyamp.Errorf(tinyamp.EUNAVAILABLE, "opening page for %s: %v", url, err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", tinyamp.Errorf(tinyamp.EUNAVAILABLE, "navigating to %s: %v", url, err)
	}

	// Bounded render wait. A page that never fires load still gets its
	// current DOM captured below.
	if err := page.Timeout(f.renderWait).WaitLoad(); err != nil {
		if ctx.Err() != nil {
			return "", tinyamp.Errorf(tinyamp.EUNAVAILABLE, "timed out rendering %s", url)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", tinyamp.Errorf(tinyamp.EUNAVAILABLE, "reading HTML for %s: %v", url, err)
	}

	f.manager.IncrementPageCount()

	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
