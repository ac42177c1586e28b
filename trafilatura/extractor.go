// Package trafilatura adapts go-trafilatura for main-content extraction.
// The full-text extraction strategy scans this output instead of the raw
// page so navigation and footer text cannot masquerade as listings.
package trafilatura

import (
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/tinyamp/tinyamp"
)

// Ensure Extractor implements tinyamp.MainContentExtractor at compile time.
var _ tinyamp.MainContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content text from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// MainText processes raw HTML and returns the main content as plain text
// with boilerplate removed.
func (e *Extractor) MainText(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", tinyamp.Errorf(tinyamp.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result.ContentText), nil
}
