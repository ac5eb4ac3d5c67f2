package folio

import "time"

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Description is the page summary from metadata, if any.
	Description string

	// PublishedAt is the publication date from metadata; zero if unknown.
	PublishedAt time.Time

	// Tags are keywords from metadata.
	Tags []string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// Imports use it when a legacy page has no recognizable article container.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}
