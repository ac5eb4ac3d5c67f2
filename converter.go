package folio

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an imported article body into Markdown.
	Convert(html string) (string, error)
}
