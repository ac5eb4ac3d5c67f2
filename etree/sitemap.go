// Package etree writes XML site artifacts using github.com/beevik/etree.
package etree

import (
	"io"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/folio"
)

// XML namespaces of the sitemap protocol and its hreflang extension.
const (
	SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	XHTMLNamespace   = "http://www.w3.org/1999/xhtml"
)

var _ folio.SitemapWriter = (*SitemapWriter)(nil)

// SitemapWriter writes a sitemap in which every document lists its
// translations as hreflang alternates.
type SitemapWriter struct {
	siteURL string
}

// NewSitemapWriter returns a SitemapWriter producing absolute URLs under
// siteURL.
func NewSitemapWriter(siteURL string) *SitemapWriter {
	return &SitemapWriter{siteURL: strings.TrimSuffix(siteURL, "/")}
}

// WriteSitemap writes one <url> per published document, ordered by path.
// Drafts are left out. refs may be nil, in which case no alternates are
// written.
func (s *SitemapWriter) WriteSitemap(w io.Writer, docs []*folio.Document, refs *folio.ReferenceTable) error {
	published := make([]*folio.Document, 0, len(docs))
	for _, d := range docs {
		if !d.Draft {
			published = append(published, d)
		}
	}
	sort.Slice(published, func(i, j int) bool { return published[i].Path < published[j].Path })

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", SitemapNamespace)
	urlset.CreateAttr("xmlns:xhtml", XHTMLNamespace)

	for _, d := range published {
		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(s.siteURL + d.Path)
		if !d.PublishedAt.IsZero() {
			u.CreateElement("lastmod").SetText(d.PublishedAt.UTC().Format("2006-01-02"))
		}

		if refs == nil {
			continue
		}
		alts := refs.Alternates(d)
		if len(alts) == 0 {
			continue
		}
		alts[d.Locale] = d.Path
		for _, l := range folio.Locales {
			p, ok := alts[l]
			if !ok {
				continue
			}
			link := u.CreateElement("xhtml:link")
			link.CreateAttr("rel", "alternate")
			link.CreateAttr("hreflang", string(l))
			link.CreateAttr("href", s.siteURL+p)
		}
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}
