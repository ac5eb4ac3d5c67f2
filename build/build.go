// Package build runs the site build: it assigns reference IDs, extracts
// documents, resolves cross-locale identity, and writes one search index
// per locale plus the sitemap.
package build

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/index"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel extraction.
const DefaultConcurrency = 8

// Builder runs the build pipeline.
type Builder struct {
	Source    folio.ContentSource
	Extractor folio.DocumentExtractor
	Assets    folio.AssetStore

	// Backfiller assigns missing reference IDs before extraction.
	// Nil skips assignment.
	Backfiller *Backfiller

	// Documents receives each locale's documents. Nil skips the catalog.
	Documents folio.DocumentService

	// Sitemap writes the sitemap asset. Nil skips it.
	Sitemap folio.SitemapWriter

	Weights     folio.FieldWeights
	Concurrency int
	Logger      *slog.Logger
}

// LocaleReport summarizes the build of one locale.
type LocaleReport struct {
	Items     int
	Documents int
	Indexed   int
	Tokens    int
	Asset     string
	Written   bool
}

// Report summarizes a build.
type Report struct {
	Locales  map[folio.Locale]*LocaleReport
	Backfill []BackfillEntry
	Groups   int
	Sitemap  bool

	// Warnings lists the items that were skipped or could not be merged.
	Warnings []folio.Warning
}

// Build runs the whole pipeline. Problems with single items become
// warnings; only storage failures abort the build.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	report := &Report{Locales: make(map[folio.Locale]*LocaleReport)}

	docsByLocale := make(map[folio.Locale][]*folio.Document)
	var all []*folio.Document
	for _, locale := range folio.Locales {
		items, err := b.Source.ListItems(ctx, locale)
		if err != nil {
			return nil, fmt.Errorf("listing %s content: %w", locale, err)
		}
		lr := &LocaleReport{Items: len(items)}
		report.Locales[locale] = lr

		if b.Backfiller != nil {
			entries := b.Backfiller.Backfill(ctx, items)
			report.Backfill = append(report.Backfill, entries...)
			for _, e := range entries {
				if e.Action == ActionFailed {
					report.Warnings = append(report.Warnings, folio.WarningFromError(e.Path, e.Err))
				}
			}
		}

		docs, warnings, err := b.extract(ctx, items)
		if err != nil {
			return nil, err
		}
		report.Warnings = append(report.Warnings, warnings...)
		lr.Documents = len(docs)
		docsByLocale[locale] = docs
		all = append(all, docs...)
	}

	refs := folio.NewReferenceTable(all)
	report.Groups = refs.Len()
	report.Warnings = append(report.Warnings, refs.Warnings...)

	builder := index.NewBuilder(b.Weights)
	for _, locale := range folio.Locales {
		lr := report.Locales[locale]
		idx, err := builder.Build(locale, docsByLocale[locale], refs)
		if err != nil {
			return nil, fmt.Errorf("indexing %s: %w", locale, err)
		}
		data, err := index.Marshal(idx)
		if err != nil {
			return nil, fmt.Errorf("encoding %s index: %w", locale, err)
		}

		lr.Asset = folio.IndexAssetPath(locale)
		lr.Indexed = len(idx.Documents)
		lr.Tokens = len(idx.Tokens)
		if lr.Written, err = b.Assets.WriteAsset(ctx, lr.Asset, data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", lr.Asset, err)
		}
		b.logger().Info("index built", "locale", locale, "documents", lr.Indexed, "tokens", lr.Tokens, "written", lr.Written)

		if b.Documents != nil {
			if err := b.Documents.ReplaceDocuments(ctx, locale, docsByLocale[locale]); err != nil {
				return nil, fmt.Errorf("cataloging %s: %w", locale, err)
			}
		}
	}

	if b.Sitemap != nil {
		var buf bytes.Buffer
		if err := b.Sitemap.WriteSitemap(&buf, all, refs); err != nil {
			return nil, fmt.Errorf("rendering sitemap: %w", err)
		}
		written, err := b.Assets.WriteAsset(ctx, folio.SitemapAssetPath, buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", folio.SitemapAssetPath, err)
		}
		report.Sitemap = written
	}

	for _, w := range report.Warnings {
		b.logger().Warn("content warning", "path", w.Path, "code", w.Code, "message", w.Message)
	}
	return report, nil
}

// extract parses items concurrently. Results keep the order of items;
// items that fail become warnings.
func (b *Builder) extract(ctx context.Context, items []*folio.ContentItem) ([]*folio.Document, []folio.Warning, error) {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	docs := make([]*folio.Document, len(items))
	errs := make([]error, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docs[i], errs[i] = b.Extractor.Extract(item)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var out []*folio.Document
	var warnings []folio.Warning
	for i, item := range items {
		if errs[i] != nil {
			warnings = append(warnings, folio.WarningFromError(item.Path, errs[i]))
			continue
		}
		out = append(out, docs[i])
	}
	return out, warnings, nil
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}
