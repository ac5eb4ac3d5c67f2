package http_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/fs"
	foliohttp "github.com/fwojciec/folio/http"
	"github.com/fwojciec/folio/index"
	"github.com/fwojciec/folio/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildOutput writes an English index asset and a page into a temporary
// build output directory.
func buildOutput(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	docs := []*folio.Document{
		{
			ID:          "blog/en/clean",
			Locale:      folio.LocaleEN,
			Collection:  folio.CollectionBlog,
			Title:       "Clean Architecture on Android",
			Path:        "/blog/clean",
			PlainText:   "layers and boundaries",
			PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	idx, err := index.NewBuilder(folio.DefaultFieldWeights).Build(folio.LocaleEN, docs, nil)
	require.NoError(t, err)
	data, err := index.Marshal(idx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, folio.IndexAssetPath(folio.LocaleEN)), data, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>home</html>"), 0o644))
	return dir
}

func newTestSiteServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := buildOutput(t)
	loader := search.NewLoader(fs.NewAssetDir(dir))
	srv := httptest.NewServer(foliohttp.NewServer(dir, loader, folio.DefaultSearchOptions(), nil))
	t.Cleanup(srv.Close)
	return srv
}

func getSearch(t *testing.T, srv *httptest.Server, query string) (int, foliohttp.SearchResponse) {
	t.Helper()

	resp, err := srv.Client().Get(srv.URL + "/api/search?" + query)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body foliohttp.SearchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestServer_Search(t *testing.T) {
	t.Parallel()

	srv := newTestSiteServer(t)

	t.Run("returns ranked hits", func(t *testing.T) {
		t.Parallel()

		status, body := getSearch(t, srv, "locale=en&q=clean")

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "results", body.State)
		require.Len(t, body.Hits, 1)
		assert.Equal(t, "/blog/clean", body.Hits[0].Path)
		assert.Equal(t, "Blog", body.Hits[0].Kind)
	})

	t.Run("reports no results", func(t *testing.T) {
		t.Parallel()

		status, body := getSearch(t, srv, "q=zzz_nonexistent")

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "no-results", body.State)
		assert.Empty(t, body.Hits)
	})

	t.Run("blank query is idle", func(t *testing.T) {
		t.Parallel()

		_, body := getSearch(t, srv, "q=%20%20")

		assert.Equal(t, "idle", body.State)
	})

	t.Run("missing index is unavailable", func(t *testing.T) {
		t.Parallel()

		status, body := getSearch(t, srv, "locale=es&q=limpia")

		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "error", body.State)
	})

	t.Run("takes the locale from the referring page", func(t *testing.T) {
		t.Parallel()

		req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/search?q=limpia", nil)
		require.NoError(t, err)
		req.Header.Set("Referer", srv.URL+"/es/blog/")
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var body foliohttp.SearchResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "es", body.Locale)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("rejects unknown locale", func(t *testing.T) {
		t.Parallel()

		status, _ := getSearch(t, srv, "locale=fr&q=x")

		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestServer_Static(t *testing.T) {
	t.Parallel()

	srv := newTestSiteServer(t)

	resp, err := srv.Client().Get(srv.URL + "/index.html")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Serve(t *testing.T) {
	t.Parallel()

	dir := buildOutput(t)
	server := foliohttp.NewServer(dir, search.NewLoader(fs.NewAssetDir(dir)), folio.DefaultSearchOptions(), nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/index.html")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
