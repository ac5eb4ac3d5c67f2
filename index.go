package folio

import (
	"context"
	"time"
)

// FieldWeights are the relative weights of the indexed fields.
type FieldWeights struct {
	Title   int `json:"title" yaml:"title"`
	Tags    int `json:"tags" yaml:"tags"`
	Excerpt int `json:"excerpt" yaml:"excerpt"`
	Body    int `json:"body" yaml:"body"`
}

// DefaultFieldWeights ranks title > tags > excerpt > body.
var DefaultFieldWeights = FieldWeights{Title: 5, Tags: 3, Excerpt: 2, Body: 1}

// Posting records that a token occurs in a document.
type Posting struct {
	DocumentID string `json:"doc"`

	// FieldWeight is the highest weight of any field the token occurs in.
	FieldWeight int `json:"field"`

	// TermFrequency counts occurrences across all fields.
	TermFrequency int `json:"tf"`

	// Score accumulates term frequency times field weight over all fields.
	Score int `json:"score"`
}

// IndexEntry is the document metadata needed to render a search result.
type IndexEntry struct {
	ID          string            `json:"id"`
	Locale      Locale            `json:"locale"`
	ReferenceID string            `json:"referenceId,omitempty"`
	Kind        string            `json:"kind"`
	Title       string            `json:"title"`
	Path        string            `json:"path"`
	Excerpt     string            `json:"excerpt"`
	Tags        []string          `json:"tags,omitempty"`
	PublishedAt time.Time         `json:"publishedAt"`
	Alternates  map[Locale]string `json:"alternates,omitempty"`
}

// SearchIndex is the queryable index of one locale.
// It is immutable once built or loaded.
type SearchIndex struct {
	Locale    Locale                 `json:"locale"`
	Documents map[string]*IndexEntry `json:"documents"`
	Tokens    map[string][]Posting   `json:"tokens"`
}

// Validate enforces locale isolation: every posting references a document
// of the index's own locale.
func (idx *SearchIndex) Validate() error {
	if !idx.Locale.Valid() {
		return Errorf(EINVALID, "index has unsupported locale %q", idx.Locale)
	}
	for id, e := range idx.Documents {
		if e == nil || e.ID != id {
			return Errorf(EINVALID, "index entry %q is malformed", id)
		}
		if e.Locale != idx.Locale {
			return Errorf(EINVALID, "index for %s contains document %s of locale %s", idx.Locale, id, e.Locale)
		}
	}
	for token, postings := range idx.Tokens {
		for _, p := range postings {
			if _, ok := idx.Documents[p.DocumentID]; !ok {
				return Errorf(EINVALID, "token %q references unknown document %s", token, p.DocumentID)
			}
		}
	}
	return nil
}

// IndexAssetPath returns the asset name of a locale's search index.
func IndexAssetPath(l Locale) string {
	return "search-index." + string(l) + ".json"
}

// SitemapAssetPath is the asset name of the generated sitemap.
const SitemapAssetPath = "sitemap.xml"

// AssetStore persists build assets.
type AssetStore interface {
	// WriteAsset stores data under name. Reports false when an identical
	// asset was already present and nothing was written.
	WriteAsset(ctx context.Context, name string, data []byte) (bool, error)
}

// AssetFetcher retrieves a serialized search index at runtime.
type AssetFetcher interface {
	// FetchIndex returns the raw index asset of the locale.
	// Returns ENOTFOUND if the asset does not exist.
	FetchIndex(ctx context.Context, locale Locale) ([]byte, error)
}
