// Package search implements the runtime half of site search: loading
// per-locale index assets, debounced query evaluation, and the modal
// controller that drives both.
package search

import (
	"context"
	"sync"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/index"
	"golang.org/x/sync/singleflight"
)

// LoadResult is the outcome of an index load.
type LoadResult struct {
	Matcher *index.Matcher
	Err     error
}

// Loader lazily loads and caches the search index of each locale.
// At most one fetch per locale is in flight at a time; concurrent requests
// share it.
type Loader struct {
	fetcher folio.AssetFetcher
	group   singleflight.Group

	mu     sync.Mutex
	loaded map[folio.Locale]*index.Matcher
}

// NewLoader returns a Loader reading index assets from fetcher.
func NewLoader(fetcher folio.AssetFetcher) *Loader {
	return &Loader{
		fetcher: fetcher,
		loaded:  make(map[folio.Locale]*index.Matcher),
	}
}

// Loaded returns the cached matcher of locale, if any.
func (l *Loader) Loaded(locale folio.Locale) (*index.Matcher, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.loaded[locale]
	return m, ok
}

// Prefetch starts loading locale's index unless it is cached or already
// loading. It does not wait.
func (l *Loader) Prefetch(locale folio.Locale) {
	if _, ok := l.Loaded(locale); ok {
		return
	}
	l.group.DoChan(string(locale), l.fetchFunc(locale))
}

// Start returns a channel that receives the result of loading locale's
// index. A pending fetch is joined rather than duplicated.
func (l *Loader) Start(locale folio.Locale) <-chan LoadResult {
	out := make(chan LoadResult, 1)
	if m, ok := l.Loaded(locale); ok {
		out <- LoadResult{Matcher: m}
		return out
	}

	ch := l.group.DoChan(string(locale), l.fetchFunc(locale))
	go func() {
		r := <-ch
		res := LoadResult{Err: r.Err}
		if r.Err == nil {
			res.Matcher = r.Val.(*index.Matcher)
		}
		out <- res
	}()
	return out
}

// Load returns locale's matcher, waiting for a pending fetch if needed.
// Canceling ctx stops the wait but not the fetch, whose result is still
// cached for later callers.
func (l *Loader) Load(ctx context.Context, locale folio.Locale) (*index.Matcher, error) {
	select {
	case r := <-l.Start(locale):
		return r.Matcher, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Loader) fetchFunc(locale folio.Locale) func() (any, error) {
	return func() (any, error) {
		if m, ok := l.Loaded(locale); ok {
			return m, nil
		}

		data, err := l.fetcher.FetchIndex(context.Background(), locale)
		if err != nil {
			return nil, err
		}
		idx, err := index.Unmarshal(data)
		if err != nil {
			return nil, err
		}
		if idx.Locale != locale {
			return nil, folio.Errorf(folio.EINVALID, "asset for %s contains index of %s", locale, idx.Locale)
		}

		m := index.NewMatcher(idx)
		l.mu.Lock()
		l.loaded[locale] = m
		l.mu.Unlock()
		return m, nil
	}
}
