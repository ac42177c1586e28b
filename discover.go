package tinyamp

import "context"

// EventURLDiscoverer finds candidate event-detail page URLs for a venue
// site. Venues that publish one page per show expose those pages through
// their sitemap; scraping the detail pages yields far cleaner candidates
// than scanning a calendar page.
//
// Discovery is best effort. A site with no sitemap returns an empty
// slice, not an error.
type EventURLDiscoverer interface {
	DiscoverEventURLs(ctx context.Context, baseURL string) ([]string, error)
}
