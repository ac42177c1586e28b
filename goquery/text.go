package goquery

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tinyamp/tinyamp"
	"golang.org/x/net/html"
)

// Ensure TextExtractor implements tinyamp.Extractor at compile time.
var _ tinyamp.Extractor = (*TextExtractor)(nil)

// contextRadius is the window of text kept around each date match, in
// bytes each direction.
const contextRadius = 300

// TextExtractor is the last-resort strategy for pages without structured
// markup or recognizable listing elements: scan the page's visible text
// for date-shaped substrings and treat nearby capitalized word runs as
// candidate artist text.
type TextExtractor struct {
	// Content optionally strips boilerplate before scanning. When nil or
	// failing, the raw visible text is scanned instead.
	Content tinyamp.MainContentExtractor
}

// NewTextExtractor creates a TextExtractor. content may be nil.
func NewTextExtractor(content tinyamp.MainContentExtractor) *TextExtractor {
	return &TextExtractor{Content: content}
}

// Extract scans visible text for dates and yields one candidate per date
// match with a ±300-character context window.
func (e *TextExtractor) Extract(rawHTML string, cfg tinyamp.VenueConfig) ([]tinyamp.RawCandidate, error) {
	text := ""
	if e.Content != nil {
		if t, err := e.Content.MainText(rawHTML); err == nil {
			text = t
		}
	}
	if text == "" {
		var err error
		text, err = visibleText(rawHTML)
		if err != nil {
			return nil, tinyamp.Errorf(tinyamp.EINVALID, "failed to parse HTML: %v", err)
		}
	}

	sourceURL := ""
	if len(cfg.URLs) > 0 {
		sourceURL = cfg.URLs[0]
	}

	artists := artistRes(cfg)
	dates := dateRes(cfg)

	var candidates []tinyamp.RawCandidate
	for _, re := range dates {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			window := contextWindow(text, loc[0], loc[1])
			// Scrub date text out of the window so month tokens inside
			// dates cannot surface as artist-shaped runs.
			matched := artistText(scrubDates(window, dates), artists)
			if matched == "" {
				continue
			}

			candidates = append(candidates, tinyamp.RawCandidate{
				SourceURL:       sourceURL,
				MatchedText:     matched,
				MatchedDateText: text[loc[0]:loc[1]],
				Context:         window,
				Strategy:        "fulltext",
			})
		}
	}

	return candidates, nil
}

// scrubDates blanks every date-shaped substring in the window.
func scrubDates(window string, dates []*regexp.Regexp) string {
	for _, re := range dates {
		window = re.ReplaceAllString(window, " ")
	}
	return window
}

// contextWindow clamps a ±contextRadius slice around [start, end),
// widened to the nearest rune boundaries so the window is valid UTF-8.
func contextWindow(text string, start, end int) string {
	lo := start - contextRadius
	if lo < 0 {
		lo = 0
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	hi := end + contextRadius
	if hi > len(text) {
		hi = len(text)
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}

// artistText joins the first few distinct capitalized runs in the window.
// The classifier caps and filters the result downstream.
func artistText(window string, artists []*regexp.Regexp) string {
	var runs []string
	seen := make(map[string]bool)

	for _, re := range artists {
		for _, m := range re.FindAllString(window, -1) {
			m = strings.TrimSpace(m)
			key := strings.ToLower(m)
			if m == "" || seen[key] {
				continue
			}
			seen[key] = true
			runs = append(runs, m)
			if len(runs) == tinyamp.MaxArtistsPerEvent {
				return strings.Join(runs, ", ")
			}
		}
	}

	return strings.Join(runs, ", ")
}

// visibleText renders the text content of a document, skipping script,
// style, and other non-visible subtrees, with whitespace collapsed.
func visibleText(rawHTML string) (string, error) {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template", "head":
				return
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return strings.Join(strings.Fields(b.String()), " "), nil
}
