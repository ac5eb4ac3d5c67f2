package folio

import (
	"context"
	"time"
)

// Article is a legacy HTML article converted for import as a content item.
type Article struct {
	SourceURL   string
	Locale      Locale
	Collection  Collection
	Slug        string
	Title       string
	Description string
	Category    string
	Tags        []string
	PublishedAt time.Time
	HeroImage   string
	Body        string // Markdown
}

// Validate returns an error if the article cannot become a content item.
func (a *Article) Validate() error {
	if a.Title == "" {
		return Errorf(EINVALID, "article %s: title required", a.SourceURL)
	}
	if a.Slug == "" {
		return Errorf(EINVALID, "article %s: slug required", a.SourceURL)
	}
	if !a.Locale.Valid() {
		return Errorf(EINVALID, "article %s: unsupported locale %q", a.SourceURL, a.Locale)
	}
	return nil
}

// ContentItem returns the content item the article is written to.
func (a *Article) ContentItem(raw []byte) *ContentItem {
	return &ContentItem{
		Path:       string(a.Collection) + "/" + string(a.Locale) + "/" + a.Slug + ".md",
		Collection: a.Collection,
		Locale:     a.Locale,
		Slug:       a.Slug,
		Raw:        raw,
	}
}

// LegacyArticle holds the fields found in a legacy article page.
type LegacyArticle struct {
	Title       string
	Subtitle    string
	Category    string
	Tags        []string
	PublishedAt time.Time

	// ContentHTML is the article body. Empty when the page has no
	// recognizable article container.
	ContentHTML string
}

// ArticleExtractor reads legacy article markup.
type ArticleExtractor interface {
	ExtractArticle(html string) (*LegacyArticle, error)
}

// ArticleEncoder renders an article as a content item with front-matter.
type ArticleEncoder interface {
	EncodeArticle(a *Article) ([]byte, error)
}

// Fetcher retrieves HTML from URLs or local paths.
type Fetcher interface {
	// Fetch returns the HTML at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
