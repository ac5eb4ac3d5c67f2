package mock

import (
	"context"

	"github.com/fwojciec/folio"
)

var _ folio.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of folio.ArticleExtractor.
type ArticleExtractor struct {
	ExtractArticleFn func(html string) (*folio.LegacyArticle, error)
}

func (e *ArticleExtractor) ExtractArticle(html string) (*folio.LegacyArticle, error) {
	return e.ExtractArticleFn(html)
}

var _ folio.ArticleEncoder = (*ArticleEncoder)(nil)

// ArticleEncoder is a mock implementation of folio.ArticleEncoder.
type ArticleEncoder struct {
	EncodeArticleFn func(a *folio.Article) ([]byte, error)
}

func (e *ArticleEncoder) EncodeArticle(a *folio.Article) ([]byte, error) {
	return e.EncodeArticleFn(a)
}

var _ folio.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of folio.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ folio.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of folio.Fetcher serving legacy pages.
// A nil CloseFn makes Close a no-op.
type Fetcher struct {
	FetchFn func(ctx context.Context, pageURL string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	return f.FetchFn(ctx, pageURL)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
