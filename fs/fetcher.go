package fs

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/folio"
)

var _ folio.Fetcher = (*FileFetcher)(nil)

// FileFetcher reads HTML pages from the local file system. It accepts
// plain paths and file:// URLs.
type FileFetcher struct{}

// NewFileFetcher creates a new FileFetcher.
func NewFileFetcher() *FileFetcher {
	return &FileFetcher{}
}

// Fetch returns the content of the file at rawURL.
func (f *FileFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(FilePath(rawURL))
	if errors.Is(err, fs.ErrNotExist) {
		return "", folio.Errorf(folio.ENOTFOUND, "file %s not found", rawURL)
	}
	return string(data), err
}

// Close is a no-op.
func (f *FileFetcher) Close() error {
	return nil
}

// FilePath converts a file:// URL to a path. Other input is returned as is.
func FilePath(rawURL string) string {
	if strings.HasPrefix(rawURL, "file://") {
		if u, err := url.Parse(rawURL); err == nil {
			return filepath.FromSlash(u.Path)
		}
	}
	return rawURL
}

// ListHTML returns the file:// URLs of the HTML files in dir, sorted.
func ListHTML(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".html", ".htm":
			u := url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(abs, e.Name()))}
			urls = append(urls, u.String())
		}
	}
	sort.Strings(urls)
	return urls, nil
}
