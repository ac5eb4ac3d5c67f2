package yaml

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/folio"
)

// DefaultExcerptLength is the rune length of derived excerpts.
const DefaultExcerptLength = 200

var _ folio.DocumentExtractor = (*Extractor)(nil)

// Extractor turns content items into documents.
type Extractor struct {
	Stripper folio.MarkupStripper

	// ExcerptLength bounds excerpts derived from the body when the
	// front-matter has no description.
	ExcerptLength int
}

// NewExtractor returns an Extractor using stripper for bodies.
func NewExtractor(stripper folio.MarkupStripper) *Extractor {
	return &Extractor{Stripper: stripper, ExcerptLength: DefaultExcerptLength}
}

// Extract parses item into a Document.
func (e *Extractor) Extract(item *folio.ContentItem) (*folio.Document, error) {
	fm, body, err := ParseFrontMatter(item.Raw)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(fm.Title) == "" {
		return nil, folio.Errorf(folio.EINVALID, "front-matter title required")
	}
	if fm.PubDate == "" {
		return nil, folio.Errorf(folio.EINVALID, "front-matter pubDate required")
	}
	published, err := ParseDate(fm.PubDate)
	if err != nil {
		return nil, err
	}

	plain := e.Stripper.StripMarkup(string(body))
	excerpt := strings.Join(strings.Fields(fm.Description), " ")
	if excerpt == "" {
		excerpt = folio.Excerpt(plain, e.ExcerptLength)
	}

	doc := &folio.Document{
		ID:          item.DocumentID(),
		Locale:      item.Locale,
		ReferenceID: strings.TrimSpace(fm.ReferenceID),
		Collection:  item.Collection,
		Title:       strings.TrimSpace(fm.Title),
		Slug:        item.Slug,
		Path:        item.Route(),
		Tags:        normalizeTags(fm.Tags),
		Excerpt:     excerpt,
		PlainText:   plain,
		PublishedAt: published,
		Draft:       fm.Draft,
		ContentHash: strconv.FormatUint(xxhash.Sum64(item.Raw), 16),
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// normalizeTags trims, de-duplicates and sorts tags.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
