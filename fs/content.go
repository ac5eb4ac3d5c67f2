package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/folio"
	"github.com/gofrs/flock"
)

var (
	_ folio.ContentSource = (*ContentDir)(nil)
	_ folio.ContentWriter = (*ContentDir)(nil)
)

// lockFile guards the content tree while content items are rewritten.
const lockFile = ".folio.lock"

// ContentDir stores content items as files laid out as
// <root>/<collection>/<locale>/<slug>.md.
type ContentDir struct {
	root string
}

// NewContentDir returns a ContentDir rooted at root.
func NewContentDir(root string) *ContentDir {
	return &ContentDir{root: root}
}

// Root returns the directory holding the collections.
func (d *ContentDir) Root() string {
	return d.root
}

// ListItems returns the items of locale across all collections ordered by
// path. Missing collection directories are skipped.
func (d *ContentDir) ListItems(ctx context.Context, locale folio.Locale) ([]*folio.ContentItem, error) {
	var items []*folio.ContentItem
	for _, c := range folio.Collections {
		dir := filepath.Join(d.root, string(c), string(locale))
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, err
		}

		for _, e := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if e.IsDir() || !isContentFile(e.Name()) {
				continue
			}
			raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				return nil, err
			}
			items = append(items, &folio.ContentItem{
				Path:       string(c) + "/" + string(locale) + "/" + e.Name(),
				Collection: c,
				Locale:     locale,
				Slug:       strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
				Raw:        raw,
			})
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })
	return items, nil
}

func isContentFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	switch filepath.Ext(name) {
	case ".md", ".mdx":
		return true
	}
	return false
}

// WriteItem atomically replaces the file of item.
// Returns EINVALID if the item path escapes the content root.
func (d *ContentDir) WriteItem(ctx context.Context, item *folio.ContentItem) error {
	rel := filepath.FromSlash(item.Path)
	if !filepath.IsLocal(rel) {
		return folio.Errorf(folio.EINVALID, "content path %q escapes content root", item.Path)
	}

	path := filepath.Join(d.root, rel)
	perm := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}
	return writeFileAtomic(path, item.Raw, perm)
}

// Lock takes an exclusive lock on the content tree and returns the function
// releasing it.
// Returns ECONFLICT if another process holds the lock.
func (d *ContentDir) Lock() (func() error, error) {
	if err := os.MkdirAll(d.root, 0755); err != nil {
		return nil, err
	}
	fl := flock.New(filepath.Join(d.root, lockFile))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, folio.Errorf(folio.ECONFLICT, "content directory %s is locked by another process", d.root)
	}
	return fl.Unlock, nil
}
