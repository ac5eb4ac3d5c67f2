package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/fwojciec/folio"
)

var _ folio.AssetFetcher = (*AssetFetcher)(nil)

// AssetFetcher retrieves search index assets from a deployed site.
type AssetFetcher struct {
	baseURL string
	client  *http.Client
}

// NewAssetFetcher returns an AssetFetcher for the site at baseURL.
// If client is nil, a client with DefaultFetchTimeout is used.
func NewAssetFetcher(baseURL string, client *http.Client) *AssetFetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &AssetFetcher{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// FetchIndex downloads the index asset of locale.
// Returns ENOTFOUND if the site does not serve it.
func (f *AssetFetcher) FetchIndex(ctx context.Context, locale folio.Locale) ([]byte, error) {
	return get(ctx, f.client, f.baseURL+"/"+folio.IndexAssetPath(locale), "")
}
