package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/build"
	"github.com/fwojciec/folio/crawl"
	"github.com/fwojciec/folio/search"
	"github.com/fwojciec/folio/yaml"
)

// SiblingResolver finds the counterpart of a document in another locale.
type SiblingResolver interface {
	ResolveSibling(ctx context.Context, doc *folio.Document, target folio.Locale) (string, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *yaml.Config

	// Lock guards the content tree against concurrent writers.
	Lock func() (func() error, error)

	Source     folio.ContentSource
	Documents  folio.DocumentService
	Siblings   SiblingResolver
	Builder    *build.Builder
	Backfiller *build.Backfiller
	Loader     *search.Loader
	Importer   *crawl.Importer

	// Serve runs the preview server on addr until the context is done.
	Serve func(ctx context.Context, addr string) error
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"C" env:"FOLIO_CONFIG" default:"folio.yaml" help:"Configuration file"`
	Verbose bool   `short:"v" help:"Log debug output"`

	Build    BuildCmd    `cmd:"" help:"Build the search indexes and sitemap"`
	Backfill BackfillCmd `cmd:"" help:"Assign missing reference IDs to content items"`
	Search   SearchCmd   `cmd:"" help:"Query a built search index"`
	Resolve  ResolveCmd  `cmd:"" help:"Resolve the sibling of a document in another locale"`
	Docs     DocsCmd     `cmd:"" help:"List catalogued documents"`
	Import   ImportCmd   `cmd:"" help:"Import articles from the legacy HTML blog"`
	Check    CheckCmd    `cmd:"" help:"Check pages for the search DOM contract"`
	Serve    ServeCmd    `cmd:"" help:"Serve the build output for local preview"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	NoAssign bool `help:"Do not assign missing reference IDs"`
}

// BackfillCmd is the "backfill" subcommand.
type BackfillCmd struct {
	Locale string `short:"l" help:"Only backfill this locale"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query  string `arg:"" help:"Search query"`
	Locale string `short:"l" default:"en" help:"Locale to search"`
	Limit  int    `short:"n" help:"Maximum number of results"`
	URL    string `help:"Fetch indexes from this site instead of the output directory"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	ID     string `arg:"" help:"Document ID or URL path, e.g. blog/en/clean-architecture or /es/blog/arquitectura-limpia"`
	Locale string `arg:"" optional:"" help:"Target locale (defaults to the other locale)"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Locale     string `short:"l" help:"Only list this locale"`
	Collection string `help:"Only list this collection"`
	Reference  string `short:"r" help:"Only list documents with this reference ID"`
	Limit      int    `short:"n" help:"Maximum number of documents"`
	Recent     bool   `help:"Sort by publication date, newest first"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Source      string   `arg:"" help:"Legacy blog URL or directory of HTML pages"`
	Locale      string   `short:"l" help:"Locale of the imported articles"`
	Collection  string   `help:"Collection to import into"`
	Preview     bool     `short:"p" help:"Show article URLs without importing"`
	Overwrite   bool     `help:"Replace content items that already exist"`
	Filter      []string `short:"F" name:"filter" help:"Filter URLs by regex (repeatable)"`
	Concurrency int      `short:"c" help:"Concurrent fetch limit"`
	Fallback    string   `default:"trafilatura" enum:"trafilatura,readability" help:"Fallback content extractor"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Files []string `arg:"" optional:"" type:"existingfile" help:"HTML pages to check; the rendered shell when omitted"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `short:"a" default:"localhost:8080" help:"Listen address"`
}
