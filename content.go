package tinyamp

// MainContentExtractor extracts the main visible text of a page with
// boilerplate (nav, footer, sidebar) removed. Used by the full-text
// extraction strategy to avoid scanning navigation garbage.
type MainContentExtractor interface {
	MainText(html string) (string, error)
}

// DescriptionConverter converts description HTML (as found in structured
// event markup) into clean markdown before storage.
type DescriptionConverter interface {
	Convert(html string) (string, error)
}
