// Package slog provides log/slog decorators for folio services.
package slog

import (
	"context"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/fwojciec/folio"
)

var _ folio.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps the legacy page fetcher used by imports. Pages are
// logged by host and article slug; missing pages are logged as warnings
// because they usually mean a stale sitemap entry.
type LoggingFetcher struct {
	next   folio.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next folio.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, pageURL string) (html string, err error) {
	defer func(begin time.Time) {
		host, slug := pageAttrs(pageURL)
		attrs := []any{"host", host, "article", slug, "duration", time.Since(begin)}
		switch {
		case err == nil:
			f.logger.Debug("fetch legacy page", append(attrs, "bytes", len(html))...)
		case folio.ErrorCode(err) == folio.ENOTFOUND:
			f.logger.Warn("legacy page missing", append(attrs, "url", pageURL)...)
		default:
			f.logger.Warn("fetch legacy page", append(attrs, "url", pageURL, "err", err)...)
		}
	}(time.Now())
	return f.next.Fetch(ctx, pageURL)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// pageAttrs splits a legacy page URL into its host ("local" for files) and
// the article slug taken from the last path segment.
func pageAttrs(pageURL string) (host, slug string) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", ""
	}
	host = u.Host
	if u.Scheme == "file" || host == "" {
		host = "local"
	}
	slug = strings.TrimSuffix(path.Base(u.Path), path.Ext(u.Path))
	if slug == "." || slug == "/" {
		slug = ""
	}
	return host, slug
}

var _ folio.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps sitemap discovery of the legacy blog.
type LoggingSitemapService struct {
	next   folio.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next folio.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs how many article
// URLs survived the import filter.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *folio.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		host, _ := pageAttrs(baseURL)
		attrs := []any{"host", host, "articles", len(urls), "duration", time.Since(begin)}
		if filter != nil {
			attrs = append(attrs, "include", len(filter.Include), "exclude", len(filter.Exclude))
		}
		if err != nil {
			s.logger.Warn("sitemap discovery", append(attrs, "err", err)...)
			return
		}
		s.logger.Info("sitemap discovery", attrs...)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
