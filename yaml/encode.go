package yaml

import (
	"bytes"
	"strings"

	"github.com/fwojciec/folio"
	"gopkg.in/yaml.v3"
)

var _ folio.ArticleEncoder = (*ArticleEncoder)(nil)

// ArticleEncoder renders imported articles as content items.
type ArticleEncoder struct {
	// NewID generates the reference ID of every imported article. When nil
	// the article is written without one and receives it on the next build.
	NewID func() string
}

// EncodeArticle returns the article as front-matter followed by its
// markdown body.
func (e *ArticleEncoder) EncodeArticle(a *folio.Article) ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	fm := FrontMatter{
		Title:       a.Title,
		Description: a.Description,
		Category:    a.Category,
		Tags:        normalizeTags(a.Tags),
		HeroImage:   a.HeroImage,
	}
	if !a.PublishedAt.IsZero() {
		fm.PubDate = a.PublishedAt.UTC().Format("2006-01-02")
	}
	if e.NewID != nil {
		fm.ReferenceID = e.NewID()
	}

	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&fm); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteString(delimiter + "\n\n")
	buf.WriteString(strings.TrimSpace(a.Body))
	buf.WriteString("\n")
	return buf.Bytes(), nil
}
