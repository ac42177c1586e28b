package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tinyamp/tinyamp"
	"golang.org/x/net/html"
)

// Ensure SelectorExtractor implements tinyamp.Extractor at compile time.
var _ tinyamp.Extractor = (*SelectorExtractor)(nil)

// Selectors that correlate with event-listing markup across venue sites.
// Venue-specific selectors from the config are tried before these.
var builtinSelectors = []string{
	`[class*="event"]`,
	`[class*="show"]`,
	`[class*="listing"]`,
	"article",
}

// Title-shaped children inside a listing block, most specific first.
var titleSelectors = []string{
	"h1", "h2", "h3", "h4",
	`[class*="title"]`,
	`[class*="headliner"]`,
	"a",
}

// minContext is the minimum surrounding context retained per candidate so
// the classifier's exclusion heuristics have material to work with.
const minContext = 100

// SelectorExtractor walks candidate CSS selectors over the DOM and yields
// a candidate for each matched element that contains a date-shaped
// substring and a title-shaped child.
type SelectorExtractor struct{}

// NewSelectorExtractor creates a new SelectorExtractor.
func NewSelectorExtractor() *SelectorExtractor {
	return &SelectorExtractor{}
}

// Extract runs the venue's selectors, then the built-in list, against the
// document. Elements already claimed by an earlier selector are not
// revisited; downstream dedup handles residual overlap.
func (e *SelectorExtractor) Extract(rawHTML string, cfg tinyamp.VenueConfig) ([]tinyamp.RawCandidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, tinyamp.Errorf(tinyamp.EINVALID, "failed to parse HTML: %v", err)
	}

	sourceURL := ""
	if len(cfg.URLs) > 0 {
		sourceURL = cfg.URLs[0]
	}

	dates := dateRes(cfg)
	selectors := append(append([]string{}, cfg.Selectors...), builtinSelectors...)

	var candidates []tinyamp.RawCandidate
	seen := make(map[*html.Node]bool)

	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			if len(s.Nodes) == 0 || seen[s.Nodes[0]] {
				return
			}
			seen[s.Nodes[0]] = true

			text := collapse(s.Text())
			dateText := firstDateMatch(text, dates)
			if dateText == "" {
				return
			}

			title := titleText(s)
			if title == "" {
				return
			}

			context := text
			if len(context) < minContext {
				// Too little listing text to classify against; borrow
				// from the parent block.
				context = collapse(s.Parent().Text())
			}

			candidates = append(candidates, tinyamp.RawCandidate{
				SourceURL:       sourceURL,
				MatchedText:     title,
				MatchedDateText: dateText,
				Context:         context,
				Strategy:        "selector",
			})
		})
	}

	return candidates, nil
}

// titleText returns the first non-empty title-shaped child's text.
func titleText(s *goquery.Selection) string {
	for _, sel := range titleSelectors {
		if t := collapse(s.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
