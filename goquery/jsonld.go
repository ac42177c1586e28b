package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tinyamp/tinyamp"
)

// Ensure JSONLDExtractor implements tinyamp.Extractor at compile time.
var _ tinyamp.Extractor = (*JSONLDExtractor)(nil)

// JSONLDExtractor pulls event candidates from schema.org structured data
// embedded in <script type="application/ld+json"> blocks. This is the most
// reliable source when present. A malformed script block is skipped, never
// fatal: the remaining blocks and strategies still run.
type JSONLDExtractor struct{}

// NewJSONLDExtractor creates a new JSONLDExtractor.
func NewJSONLDExtractor() *JSONLDExtractor {
	return &JSONLDExtractor{}
}

// jsonldEvent unmarshals the variant shapes schema.org emitters produce.
// Fields may be plain strings, {"@value":...} objects, or arrays.
type jsonldEvent struct {
	AtType      json.RawMessage   `json:"@type"`
	AtGraph     []json.RawMessage `json:"@graph"`
	Name        json.RawMessage   `json:"name"`
	StartDate   json.RawMessage   `json:"startDate"`
	Description json.RawMessage   `json:"description"`
	Performer   json.RawMessage   `json:"performer"`
}

// Extract parses every JSON-LD block and yields one candidate per event
// node of type Event (or any *Event subtype, e.g. MusicEvent).
func (e *JSONLDExtractor) Extract(html string, cfg tinyamp.VenueConfig) ([]tinyamp.RawCandidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, tinyamp.Errorf(tinyamp.EINVALID, "failed to parse HTML: %v", err)
	}

	sourceURL := ""
	if len(cfg.URLs) > 0 {
		sourceURL = cfg.URLs[0]
	}

	var candidates []tinyamp.RawCandidate
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		candidates = append(candidates, extractFromBlock(s.Text(), sourceURL)...)
	})

	return candidates, nil
}

// extractFromBlock decodes one script block, which may hold a single node,
// an array of nodes, or an @graph wrapper.
func extractFromBlock(raw, sourceURL string) []tinyamp.RawCandidate {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var nodes []json.RawMessage
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &nodes); err != nil {
			return nil
		}
	} else {
		nodes = []json.RawMessage{json.RawMessage(raw)}
	}

	var candidates []tinyamp.RawCandidate
	for _, node := range nodes {
		var evt jsonldEvent
		if err := json.Unmarshal(node, &evt); err != nil {
			continue
		}

		// Unwrap @graph containers.
		if len(evt.AtGraph) > 0 {
			for _, inner := range evt.AtGraph {
				candidates = append(candidates, eventCandidates(inner, sourceURL)...)
			}
			continue
		}

		candidates = append(candidates, eventCandidates(node, sourceURL)...)
	}

	return candidates
}

// eventCandidates converts one JSON-LD node into raw candidates if it
// describes an event.
func eventCandidates(node json.RawMessage, sourceURL string) []tinyamp.RawCandidate {
	var evt jsonldEvent
	if err := json.Unmarshal(node, &evt); err != nil {
		return nil
	}

	if !isEventType(evt.AtType) {
		return nil
	}

	name := stringValue(evt.Name)
	date := stringValue(evt.StartDate)
	if date == "" {
		return nil
	}

	matched := strings.Join(performerNames(evt.Performer), ", ")
	if matched == "" {
		// No performer field: the event name itself is usually the bill.
		matched = name
	}
	if matched == "" {
		return nil
	}

	context := name
	if desc := stringValue(evt.Description); desc != "" {
		context = context + " — " + desc
	}

	return []tinyamp.RawCandidate{{
		SourceURL:       sourceURL,
		MatchedText:     matched,
		MatchedDateText: date,
		Context:         context,
		Strategy:        "jsonld",
	}}
}

// isEventType accepts "Event" and any subtype ending in "Event"
// (MusicEvent, TheaterEvent, ...). The @type field itself may be a string
// or an array of strings.
func isEventType(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return strings.HasSuffix(single, "Event")
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		for _, t := range many {
			if strings.HasSuffix(t, "Event") {
				return true
			}
		}
	}

	return false
}

// performerNames extracts performer names from a value that may be a
// single Person/MusicGroup object, an array of them, or a plain string.
func performerNames(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil
		}
		return []string{s}
	}

	var many []json.RawMessage
	if err := json.Unmarshal(raw, &many); err == nil {
		var names []string
		for _, m := range many {
			names = append(names, performerNames(m)...)
		}
		return names
	}

	var obj struct {
		Name json.RawMessage `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if name := stringValue(obj.Name); name != "" {
			return []string{name}
		}
	}

	return nil
}

// stringValue extracts a plain string from a value that may be a JSON
// string or a {"@value":"..."} object.
func stringValue(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var obj struct {
		Value string `json:"@value"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return strings.TrimSpace(obj.Value)
	}

	return ""
}
