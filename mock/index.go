package mock

import (
	"context"

	"github.com/fwojciec/folio"
)

var _ folio.AssetStore = (*AssetStore)(nil)

// AssetStore is a mock implementation of folio.AssetStore.
type AssetStore struct {
	WriteAssetFn func(ctx context.Context, name string, data []byte) (bool, error)
}

func (s *AssetStore) WriteAsset(ctx context.Context, name string, data []byte) (bool, error) {
	return s.WriteAssetFn(ctx, name, data)
}

var _ folio.AssetFetcher = (*AssetFetcher)(nil)

// AssetFetcher is a mock implementation of folio.AssetFetcher.
type AssetFetcher struct {
	FetchIndexFn func(ctx context.Context, locale folio.Locale) ([]byte, error)
}

func (f *AssetFetcher) FetchIndex(ctx context.Context, locale folio.Locale) ([]byte, error) {
	return f.FetchIndexFn(ctx, locale)
}
