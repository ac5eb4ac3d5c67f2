// Package readability extracts legacy article content with
// github.com/go-shiori/go-readability. It is the lighter alternative to the
// trafilatura extractor.
package readability

import (
	"strings"

	"github.com/fwojciec/folio"
	"github.com/go-shiori/go-readability"
)

var _ folio.Extractor = (*Extractor)(nil)

// Extractor finds the main content of a legacy page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. The article
// excerpt becomes the description.
func (e *Extractor) Extract(rawHTML string) (*folio.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, folio.Errorf(folio.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &folio.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		Description: strings.TrimSpace(article.Excerpt),
		ContentHTML: article.Content,
	}, nil
}
