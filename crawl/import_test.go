package crawl_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/crawl"
	"github.com/fwojciec/folio/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// importFixture wires an Importer to in-memory fakes. Pages map URLs to the
// legacy article they contain; "<missing>" pages fail to fetch.
type importFixture struct {
	importer *crawl.Importer

	mu       sync.Mutex
	written  []*folio.ContentItem
	existing []*folio.ContentItem
	waits    []string
}

func newImportFixture(t *testing.T, pages map[string]*folio.LegacyArticle) *importFixture {
	t.Helper()

	fx := &importFixture{}
	fx.importer = &crawl.Importer{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if _, ok := pages[url]; !ok {
					return "", folio.Errorf(folio.ENOTFOUND, "HTTP 404 for %s", url)
				}
				return url, nil
			},
		},
		Articles: &mock.ArticleExtractor{
			ExtractArticleFn: func(html string) (*folio.LegacyArticle, error) {
				a := *pages[html]
				return &a, nil
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "md:" + html, nil
			},
		},
		Encoder: &mock.ArticleEncoder{
			EncodeArticleFn: func(a *folio.Article) ([]byte, error) {
				return []byte(a.Title + "|" + strings.Join(a.Tags, ",") + "|" + a.PublishedAt.Format("2006-01-02") + "|" + a.HeroImage + "|" + a.Body), nil
			},
		},
		Source: &mock.ContentSource{
			ListItemsFn: func(ctx context.Context, locale folio.Locale) ([]*folio.ContentItem, error) {
				return fx.existing, nil
			},
		},
		Writer: &mock.ContentWriter{
			WriteItemFn: func(ctx context.Context, item *folio.ContentItem) error {
				fx.mu.Lock()
				defer fx.mu.Unlock()
				fx.written = append(fx.written, item)
				return nil
			},
		},
		RateLimiter: &mock.DomainLimiter{
			WaitFn: func(ctx context.Context, domain string) error {
				fx.mu.Lock()
				defer fx.mu.Unlock()
				fx.waits = append(fx.waits, domain)
				return nil
			},
		},
		Locale:      folio.LocaleES,
		Collection:  folio.CollectionBlog,
		DefaultDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		HeroImage:   "/images/placeholder-article-{slug}.svg",
		Concurrency: 3,
		RetryDelays: []time.Duration{},
	}
	return fx
}

func legacy(title string) *folio.LegacyArticle {
	return &folio.LegacyArticle{
		Title:       title,
		Subtitle:    "sub",
		Category:    "Android",
		PublishedAt: time.Date(2023, 5, 14, 0, 0, 0, 0, time.UTC),
		ContentHTML: "<p>" + title + "</p>",
	}
}

func TestImporter_Import(t *testing.T) {
	t.Parallel()

	t.Run("writes items in URL order", func(t *testing.T) {
		t.Parallel()

		pages := map[string]*folio.LegacyArticle{
			"https://old.example.com/blog/blog-kotlin.html": legacy("Kotlin"),
			"https://old.example.com/blog/arquitectura.html": legacy("Arquitectura"),
			"https://old.example.com/blog/compose.html":      legacy("Compose"),
		}
		fx := newImportFixture(t, pages)
		urls := []string{
			"https://old.example.com/blog/blog-kotlin.html",
			"https://old.example.com/blog/arquitectura.html",
			"https://old.example.com/blog/compose.html",
		}

		res, err := fx.importer.Import(context.Background(), urls, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, res.Imported)
		require.Len(t, fx.written, 3)
		assert.Equal(t, "blog/es/blog-kotlin.md", fx.written[0].Path)
		assert.Equal(t, "blog/es/arquitectura.md", fx.written[1].Path)
		assert.Equal(t, "blog/es/compose.md", fx.written[2].Path)
		assert.Equal(t, folio.LocaleES, fx.written[0].Locale)
		assert.Equal(t,
			"Kotlin|Android|2023-05-14|/images/placeholder-article-kotlin.svg|md:<p>Kotlin</p>",
			string(fx.written[0].Raw))
		assert.Equal(t, []string{"old.example.com", "old.example.com", "old.example.com"}, fx.waits)
	})

	t.Run("falls back to the default date", func(t *testing.T) {
		t.Parallel()

		page := legacy("Sin fecha")
		page.PublishedAt = time.Time{}
		fx := newImportFixture(t, map[string]*folio.LegacyArticle{"file:///tmp/blog/sin-fecha.html": page})

		_, err := fx.importer.Import(context.Background(), []string{"file:///tmp/blog/sin-fecha.html"}, nil)

		require.NoError(t, err)
		require.Len(t, fx.written, 1)
		assert.Contains(t, string(fx.written[0].Raw), "|2025-01-01|")
		assert.Empty(t, fx.waits, "local files are not rate limited")
	})

	t.Run("uses the fallback extractor when the template has no content", func(t *testing.T) {
		t.Parallel()

		page := legacy("")
		page.ContentHTML = ""
		page.Tags = []string{"compose"}
		fx := newImportFixture(t, map[string]*folio.LegacyArticle{"https://old.example.com/blog/x.html": page})
		fx.importer.Fallback = &mock.Extractor{
			ExtractFn: func(html string) (*folio.ExtractResult, error) {
				return &folio.ExtractResult{Title: "Rescatado", Tags: []string{"ignored"}, ContentHTML: "<p>cuerpo</p>"}, nil
			},
		}

		res, err := fx.importer.Import(context.Background(), []string{"https://old.example.com/blog/x.html"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, res.Imported)
		assert.Equal(t, "Rescatado|compose|2023-05-14|/images/placeholder-article-x.svg|md:<p>cuerpo</p>", string(fx.written[0].Raw))
	})

	t.Run("counts failures without aborting", func(t *testing.T) {
		t.Parallel()

		empty := legacy("Vacío")
		empty.ContentHTML = ""
		fx := newImportFixture(t, map[string]*folio.LegacyArticle{
			"https://old.example.com/blog/ok.html":    legacy("Ok"),
			"https://old.example.com/blog/empty.html": empty,
		})
		var events []crawl.ProgressEvent
		var mu sync.Mutex

		res, err := fx.importer.Import(context.Background(), []string{
			"https://old.example.com/blog/missing.html",
			"https://old.example.com/blog/ok.html",
			"https://old.example.com/blog/empty.html",
		}, func(e crawl.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
		})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Imported)
		assert.Equal(t, 2, res.Failed)

		var failed int
		for _, e := range events {
			if e.Type == crawl.ProgressFailed {
				failed++
				require.Error(t, e.Error)
			}
		}
		assert.Equal(t, 2, failed)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, crawl.ProgressFinished, events[len(events)-1].Type)
	})

	t.Run("skips existing items unless overwriting", func(t *testing.T) {
		t.Parallel()

		pages := map[string]*folio.LegacyArticle{"https://old.example.com/blog/kotlin.html": legacy("Kotlin")}
		fx := newImportFixture(t, pages)
		fx.existing = []*folio.ContentItem{{Path: "blog/es/kotlin.md"}}

		res, err := fx.importer.Import(context.Background(), []string{"https://old.example.com/blog/kotlin.html"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Skipped)
		assert.Empty(t, fx.written)

		fx.importer.Overwrite = true
		res, err = fx.importer.Import(context.Background(), []string{"https://old.example.com/blog/kotlin.html"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Imported)
		assert.Len(t, fx.written, 1)
	})

	t.Run("rejects an unsupported locale", func(t *testing.T) {
		t.Parallel()

		fx := newImportFixture(t, nil)
		fx.importer.Locale = "fr"

		_, err := fx.importer.Import(context.Background(), nil, nil)

		assert.Equal(t, folio.EINVALID, folio.ErrorCode(err))
	})
}

func TestImporter_Discover(t *testing.T) {
	t.Parallel()

	t.Run("prefers the sitemap", func(t *testing.T) {
		t.Parallel()

		im := &crawl.Importer{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *folio.URLFilter) ([]string, error) {
					return []string{baseURL + "a.html"}, nil
				},
			},
			Links: &mock.LinkExtractor{
				ExtractLinksFn: func(html, baseURL string) ([]string, error) {
					t.Fatal("links should not be followed")
					return nil, nil
				},
			},
		}

		urls, err := im.Discover(context.Background(), "https://old.example.com/blog/", nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://old.example.com/blog/a.html"}, urls)
	})

	t.Run("follows links when the sitemap is empty", func(t *testing.T) {
		t.Parallel()

		site := map[string][]string{
			"https://old.example.com/blog":        {"https://old.example.com/blog/a.html", "https://old.example.com/blog/b.html"},
			"https://old.example.com/blog/a.html": {"https://old.example.com/blog/b.html", "https://old.example.com/blog/"},
			"https://old.example.com/blog/b.html": {"https://old.example.com/blog/c.html#top"},
			"https://old.example.com/blog/c.html": nil,
		}
		var fetched []string
		im := &crawl.Importer{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *folio.URLFilter) ([]string, error) {
					return []string{}, nil
				},
			},
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					fetched = append(fetched, url)
					if _, ok := site[url]; !ok {
						return "", errors.New("unexpected fetch of " + url)
					}
					return url, nil
				},
			},
			Links: &mock.LinkExtractor{
				ExtractLinksFn: func(html, baseURL string) ([]string, error) {
					return site[html], nil
				},
			},
			RetryDelays: []time.Duration{},
		}

		urls, err := im.Discover(context.Background(), "https://old.example.com/blog/", nil)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://old.example.com/blog/a.html",
			"https://old.example.com/blog/b.html",
			"https://old.example.com/blog/c.html",
		}, urls)
		assert.Len(t, fetched, 4)
	})

	t.Run("stops after the page limit", func(t *testing.T) {
		t.Parallel()

		next := 0
		im := &crawl.Importer{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) { return url, nil },
			},
			Links: &mock.LinkExtractor{
				ExtractLinksFn: func(html, baseURL string) ([]string, error) {
					next++
					return []string{"https://old.example.com/blog/" + strings.Repeat("x", next) + ".html"}, nil
				},
			},
			RetryDelays: []time.Duration{},
			MaxPages:    3,
		}

		urls, err := im.Discover(context.Background(), "https://old.example.com/blog/", nil)

		require.NoError(t, err)
		assert.Len(t, urls, 2)
	})

	t.Run("propagates sitemap errors", func(t *testing.T) {
		t.Parallel()

		im := &crawl.Importer{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *folio.URLFilter) ([]string, error) {
					return nil, errors.New("boom")
				},
			},
		}

		_, err := im.Discover(context.Background(), "https://old.example.com/", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sitemap discovery")
	})
}

func TestSlugFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url, want string
	}{
		{"https://old.example.com/blog/arquitectura-limpia.html", "arquitectura-limpia"},
		{"https://old.example.com/blog/Diseño_Móvil.html", "diseno-movil"},
		{"file:///tmp/blog/kotlin.html", "kotlin"},
		{"https://old.example.com/blog/compose/", "compose"},
		{"https://old.example.com/", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, crawl.SlugFromURL(tt.url), tt.url)
	}
}
