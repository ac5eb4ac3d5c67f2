// Package trafilatura extracts legacy article content with
// github.com/markusmobius/go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/folio"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ folio.Extractor = (*Extractor)(nil)

// Extractor finds the main content of pages whose markup the legacy
// article selectors do not recognize.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content and metadata.
func (e *Extractor) Extract(rawHTML string) (*folio.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, folio.Errorf(folio.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeImages:   true,
		IncludeLinks:    true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &folio.ExtractResult{
		Title:       result.Metadata.Title,
		Description: result.Metadata.Description,
		PublishedAt: result.Metadata.Date,
		Tags:        result.Metadata.Tags,
		ContentHTML: contentHTML,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
