package mock

import (
	"context"
	"io"

	"github.com/fwojciec/folio"
)

var _ folio.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of folio.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *folio.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *folio.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

var _ folio.SitemapWriter = (*SitemapWriter)(nil)

// SitemapWriter is a mock implementation of folio.SitemapWriter.
type SitemapWriter struct {
	WriteSitemapFn func(w io.Writer, docs []*folio.Document, refs *folio.ReferenceTable) error
}

func (s *SitemapWriter) WriteSitemap(w io.Writer, docs []*folio.Document, refs *folio.ReferenceTable) error {
	return s.WriteSitemapFn(w, docs, refs)
}

var _ folio.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of folio.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}
