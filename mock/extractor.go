package mock

import "github.com/tinyamp/tinyamp"

var _ tinyamp.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of tinyamp.Extractor.
type Extractor struct {
	ExtractFn func(html string, cfg tinyamp.VenueConfig) ([]tinyamp.RawCandidate, error)
}

func (e *Extractor) Extract(html string, cfg tinyamp.VenueConfig) ([]tinyamp.RawCandidate, error) {
	return e.ExtractFn(html, cfg)
}

var _ tinyamp.MainContentExtractor = (*MainContentExtractor)(nil)

// MainContentExtractor is a mock implementation of tinyamp.MainContentExtractor.
type MainContentExtractor struct {
	MainTextFn func(html string) (string, error)
}

func (e *MainContentExtractor) MainText(html string) (string, error) {
	return e.MainTextFn(html)
}

var _ tinyamp.DescriptionConverter = (*DescriptionConverter)(nil)

// DescriptionConverter is a mock implementation of tinyamp.DescriptionConverter.
type DescriptionConverter struct {
	ConvertFn func(html string) (string, error)
}

func (c *DescriptionConverter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
