package search_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/index"
	"github.com/fwojciec/folio/mock"
	"github.com/stretchr/testify/require"
)

// assets builds index assets for both locales.
func assets(t *testing.T) map[folio.Locale][]byte {
	t.Helper()

	published := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	docs := map[folio.Locale][]*folio.Document{
		folio.LocaleEN: {
			{ID: "blog/en/clean", Locale: folio.LocaleEN, Collection: folio.CollectionBlog, Title: "Clean Architecture Android", Path: "/blog/clean", PublishedAt: published},
			{ID: "blog/en/kotlin", Locale: folio.LocaleEN, Collection: folio.CollectionBlog, Title: "Kotlin Flow", Path: "/blog/kotlin", PublishedAt: published},
		},
		folio.LocaleES: {
			{ID: "blog/es/clean", Locale: folio.LocaleES, Collection: folio.CollectionBlog, Title: "Arquitectura Limpia Android", Path: "/es/blog/clean", PublishedAt: published},
		},
	}

	out := make(map[folio.Locale][]byte)
	for l, d := range docs {
		idx, err := index.NewBuilder(folio.DefaultFieldWeights).Build(l, d, nil)
		require.NoError(t, err)
		data, err := index.Marshal(idx)
		require.NoError(t, err)
		out[l] = data
	}
	return out
}

// gatedFetcher serves assets after its gate for the locale is opened and
// counts fetches per locale.
type gatedFetcher struct {
	assets map[folio.Locale][]byte

	mu     sync.Mutex
	gates  map[folio.Locale]chan struct{}
	counts map[folio.Locale]*atomic.Int32
	err    error
}

func newGatedFetcher(assets map[folio.Locale][]byte) *gatedFetcher {
	f := &gatedFetcher{
		assets: assets,
		gates:  make(map[folio.Locale]chan struct{}),
		counts: make(map[folio.Locale]*atomic.Int32),
	}
	for _, l := range folio.Locales {
		f.gates[l] = make(chan struct{})
		f.counts[l] = &atomic.Int32{}
	}
	return f
}

func (f *gatedFetcher) open(l folio.Locale) { close(f.gates[l]) }

func (f *gatedFetcher) count(l folio.Locale) int { return int(f.counts[l].Load()) }

func (f *gatedFetcher) fetcher() *mock.AssetFetcher {
	return &mock.AssetFetcher{
		FetchIndexFn: func(_ context.Context, l folio.Locale) ([]byte, error) {
			f.counts[l].Add(1)
			<-f.gates[l]
			f.mu.Lock()
			err := f.err
			f.mu.Unlock()
			if err != nil {
				return nil, err
			}
			return f.assets[l], nil
		},
	}
}

// eventLoop is a dispatcher that queues tasks until the test runs them.
type eventLoop chan func()

func (e eventLoop) post(f func()) { e <- f }

func (e eventLoop) runNext(t *testing.T) {
	t.Helper()
	select {
	case f := <-e:
		f()
	case <-time.After(5 * time.Second):
		t.Fatal("no task dispatched")
	}
}

func (e eventLoop) empty() bool {
	select {
	case f := <-e:
		e <- f
		return false
	default:
		return true
	}
}
