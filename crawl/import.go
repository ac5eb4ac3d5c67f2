// Package crawl imports articles from the legacy HTML blog into the content
// tree. It coordinates discovery, fetching, extraction, conversion to
// Markdown and writing of content items.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/bloom"
	"golang.org/x/sync/errgroup"
)

// Frontier configuration for link discovery.
const (
	// frontierExpectedPages sizes the Bloom filter.
	frontierExpectedPages = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// DefaultMaxPages limits link discovery to prevent runaway walks.
	DefaultMaxPages = 500
	// DefaultConcurrency is used when Importer.Concurrency is not positive.
	DefaultConcurrency = 4
)

// SlugPlaceholder is replaced with the article slug in Importer.HeroImage.
const SlugPlaceholder = "{slug}"

// Importer converts legacy article pages into content items.
type Importer struct {
	Sitemaps    folio.SitemapService
	Links       folio.LinkExtractor
	Fetcher     folio.Fetcher
	Articles    folio.ArticleExtractor
	Fallback    folio.Extractor
	Converter   folio.Converter
	Encoder     folio.ArticleEncoder
	Source      folio.ContentSource
	Writer      folio.ContentWriter
	RateLimiter folio.DomainLimiter
	Logger      *slog.Logger

	// Locale and Collection place imported articles in the content tree.
	Locale     folio.Locale
	Collection folio.Collection

	// DefaultDate is used for articles whose page shows no date.
	DefaultDate time.Time

	// HeroImage is the hero image path pattern; SlugPlaceholder is
	// replaced with the article slug. Empty leaves the field out.
	HeroImage string

	// Overwrite replaces content items that already exist. Otherwise they
	// are skipped, which keeps their reference IDs stable.
	Overwrite bool

	Concurrency int
	RetryDelays []time.Duration
	MaxPages    int
}

// Result holds the outcome of an import.
type Result struct {
	Imported int
	Skipped  int
	Failed   int
	Bytes    int
}

// ProgressEvent reports progress during an import.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressImported
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting import progress.
type ProgressFunc func(event ProgressEvent)

// importResult holds the outcome of processing a single URL.
type importResult struct {
	position int
	url      string
	article  *folio.Article
	raw      []byte
	err      error
}

// Discover lists the article URLs below baseURL. The site's sitemaps are
// consulted first; when they list nothing and a LinkExtractor is set, links
// are followed breadth-first from baseURL itself.
func (im *Importer) Discover(ctx context.Context, baseURL string, filter *folio.URLFilter) ([]string, error) {
	if im.Sitemaps != nil {
		urls, err := im.Sitemaps.DiscoverURLs(ctx, baseURL, filter)
		if err != nil {
			return nil, fmt.Errorf("sitemap discovery: %w", err)
		}
		if len(urls) > 0 {
			return urls, nil
		}
	}
	if im.Links == nil {
		return []string{}, nil
	}
	return im.walk(ctx, baseURL, filter)
}

// walk visits pages sequentially so that rate limiting and the frontier
// stay simple. The seed page itself is never reported as an article.
func (im *Importer) walk(ctx context.Context, baseURL string, filter *folio.URLFilter) ([]string, error) {
	maxPages := im.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	frontier := NewFrontier(frontierExpectedPages, frontierFalsePositiveRate)
	frontier.Push(baseURL)
	seed := bloom.PageKey(baseURL)

	found := []string{}
	for visited := 0; visited < maxPages; visited++ {
		page, ok := frontier.Pop()
		if !ok {
			break
		}

		html, err := im.fetch(ctx, page)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			im.logger().Warn("skipping page", "url", page, "error", err)
			continue
		}

		if page != seed && filter.Match(page) {
			found = append(found, page)
		}

		links, err := im.Links.ExtractLinks(html, page)
		if err != nil {
			continue
		}
		for _, link := range links {
			frontier.Push(link)
		}
	}
	return found, nil
}

// Import converts every page in urls and writes the resulting content
// items in the order of urls. Pages that fail are counted and reported
// through progress; they never abort the import.
func (im *Importer) Import(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	if !im.Locale.Valid() {
		return nil, folio.Errorf(folio.EINVALID, "unsupported import locale %q", im.Locale)
	}

	existing, err := im.existingPaths(ctx)
	if err != nil {
		return nil, err
	}

	concurrency := im.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan importResult, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	go func() {
		for i, u := range urls {
			g.Go(func() error {
				resultCh <- im.processURL(gctx, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect everything first so items are written in a stable order.
	results := make([]importResult, len(urls))
	var completed atomic.Int64
	for r := range resultCh {
		results[r.position] = r
		n := int(completed.Add(1))
		if r.err != nil && progress != nil {
			progress(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, URL: r.url, Error: r.err})
		}
	}

	res := &Result{}
	for _, r := range results {
		if r.err != nil {
			res.Failed++
			continue
		}

		item := r.article.ContentItem(r.raw)
		if existing[item.Path] && !im.Overwrite {
			res.Skipped++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressSkipped, Total: total, URL: r.url, Path: item.Path})
			}
			continue
		}
		existing[item.Path] = true

		if err := im.Writer.WriteItem(ctx, item); err != nil {
			res.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Total: total, URL: r.url, Path: item.Path, Error: err})
			}
			continue
		}

		res.Imported++
		res.Bytes += len(item.Raw)
		if progress != nil {
			progress(ProgressEvent{Type: ProgressImported, Total: total, URL: r.url, Path: item.Path})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return res, nil
}

func (im *Importer) existingPaths(ctx context.Context) (map[string]bool, error) {
	existing := make(map[string]bool)
	if im.Source == nil {
		return existing, nil
	}
	items, err := im.Source.ListItems(ctx, im.Locale)
	if err != nil {
		return nil, fmt.Errorf("listing existing content: %w", err)
	}
	for _, item := range items {
		existing[item.Path] = true
	}
	return existing, nil
}

// processURL fetches, extracts, converts and encodes a single page.
func (im *Importer) processURL(ctx context.Context, position int, pageURL string) importResult {
	result := importResult{position: position, url: pageURL}

	html, err := im.fetch(ctx, pageURL)
	if err != nil {
		result.err = err
		return result
	}

	article, err := im.extract(pageURL, html)
	if err != nil {
		result.err = err
		return result
	}

	raw, err := im.Encoder.EncodeArticle(article)
	if err != nil {
		result.err = err
		return result
	}

	result.article = article
	result.raw = raw
	return result
}

// extract builds the article from the legacy template, filling whatever the
// template lacks from the fallback extractor.
func (im *Importer) extract(pageURL, html string) (*folio.Article, error) {
	legacy, err := im.Articles.ExtractArticle(html)
	if err != nil {
		return nil, err
	}

	a := &folio.Article{
		SourceURL:   pageURL,
		Locale:      im.Locale,
		Collection:  im.Collection,
		Title:       legacy.Title,
		Description: legacy.Subtitle,
		Category:    legacy.Category,
		Tags:        legacy.Tags,
		PublishedAt: legacy.PublishedAt,
	}
	content := legacy.ContentHTML

	if (content == "" || a.Title == "") && im.Fallback != nil {
		fb, err := im.Fallback.Extract(html)
		if err != nil {
			return nil, fmt.Errorf("fallback extraction: %w", err)
		}
		if a.Title == "" {
			a.Title = fb.Title
		}
		if a.Description == "" {
			a.Description = fb.Description
		}
		if a.PublishedAt.IsZero() {
			a.PublishedAt = fb.PublishedAt
		}
		if len(a.Tags) == 0 {
			a.Tags = fb.Tags
		}
		if content == "" {
			content = fb.ContentHTML
		}
	}

	if strings.TrimSpace(content) == "" {
		return nil, folio.Errorf(folio.EINVALID, "%s: no article content found", pageURL)
	}
	if a.Title == "" {
		return nil, folio.Errorf(folio.EINVALID, "%s: no title found", pageURL)
	}
	if len(a.Tags) == 0 && a.Category != "" {
		a.Tags = []string{a.Category}
	}
	if a.PublishedAt.IsZero() {
		a.PublishedAt = im.DefaultDate
	}

	a.Slug = SlugFromURL(pageURL)
	if a.Slug == "" {
		a.Slug = folio.Slugify(a.Title)
	}
	if im.HeroImage != "" {
		a.HeroImage = strings.ReplaceAll(im.HeroImage, SlugPlaceholder, strings.TrimPrefix(a.Slug, "blog-"))
	}

	body, err := im.Converter.Convert(content)
	if err != nil {
		return nil, err
	}
	a.Body = body

	return a, a.Validate()
}

// fetch rate limits per host and retries transient failures.
func (im *Importer) fetch(ctx context.Context, pageURL string) (string, error) {
	if im.RateLimiter != nil {
		if u, err := url.Parse(pageURL); err == nil && u.Scheme != "file" {
			if err := im.RateLimiter.Wait(ctx, u.Host); err != nil {
				return "", err
			}
		}
	}

	delays := im.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetry(ctx, pageURL, im.Fetcher.Fetch, func(u string, attempt int, err error) {
		im.logger().Debug("retry", "url", u, "attempt", attempt, "error", err)
	}, delays)
}

func (im *Importer) logger() *slog.Logger {
	if im.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return im.Logger
}

// SlugFromURL derives an article slug from the last path segment of a page
// URL, e.g. ".../blog/arquitectura-limpia.html" gives "arquitectura-limpia".
// Returns the empty string when the URL has no usable segment.
func SlugFromURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	base := path.Base(strings.TrimSuffix(u.Path, "/"))
	if base == "." || base == "/" {
		return ""
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	return folio.Slugify(base)
}
