package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/folio"
)

var (
	_ folio.AssetStore   = (*AssetDir)(nil)
	_ folio.AssetFetcher = (*AssetDir)(nil)
)

// AssetDir stores build assets in the site output directory.
type AssetDir struct {
	root string
}

// NewAssetDir returns an AssetDir rooted at root.
func NewAssetDir(root string) *AssetDir {
	return &AssetDir{root: root}
}

// Root returns the output directory.
func (d *AssetDir) Root() string {
	return d.root
}

// WriteAsset writes data under name unless an identical file exists.
func (d *AssetDir) WriteAsset(ctx context.Context, name string, data []byte) (bool, error) {
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return false, folio.Errorf(folio.EINVALID, "asset name %q escapes output directory", name)
	}
	path := filepath.Join(d.root, filepath.FromSlash(name))

	existing, err := os.ReadFile(path)
	if err == nil && xxhash.Sum64(existing) == xxhash.Sum64(data) {
		return false, nil
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	if err := writeFileAtomic(path, data, 0644); err != nil {
		return false, err
	}
	return true, nil
}

// FetchIndex reads the index asset of locale.
func (d *AssetDir) FetchIndex(ctx context.Context, locale folio.Locale) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.root, folio.IndexAssetPath(locale)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, folio.Errorf(folio.ENOTFOUND, "index asset for %s not found in %s", locale, d.root)
	}
	return data, err
}
