package main

import (
	"fmt"
	"regexp"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/crawl"
	"github.com/fwojciec/folio/fs"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	cfg := deps.Config.Import
	im := deps.Importer

	locale := cfg.Locale
	if c.Locale != "" {
		l, err := folio.ParseLocale(c.Locale)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
			return err
		}
		locale = l
	}
	collection := cfg.Collection
	if c.Collection != "" {
		col, err := folio.ParseCollection(c.Collection)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
			return err
		}
		collection = col
	}

	filter, err := cfg.URLFilter()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}
	for _, pattern := range c.Filter {
		re, err := regexp.Compile(pattern)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: invalid filter pattern %q: %v\n", pattern, err)
			return err
		}
		if filter == nil {
			filter = &folio.URLFilter{}
		}
		filter.Include = append(filter.Include, re)
	}

	defaultDate, err := cfg.PublishedDefault()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	im.Locale = locale
	im.Collection = collection
	im.DefaultDate = defaultDate
	im.Overwrite = c.Overwrite
	if c.Concurrency > 0 {
		im.Concurrency = c.Concurrency
	}

	var urls []string
	if isLocalSource(c.Source) {
		urls, err = localPages(fs.FilePath(c.Source), filter)
	} else {
		urls, err = im.Discover(deps.Ctx, c.Source, filter)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	if c.Preview {
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	unlock, err := deps.Lock()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}
	defer unlock()

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d articles\n", event.Total)
		case crawl.ProgressImported:
			fmt.Fprintf(deps.Stdout, "  wrote %s\n", event.Path)
		case crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  keep  %s (exists)\n", event.Path)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateURL(event.URL, 60), event.Error)
		}
	}

	result, err := im.Import(deps.Ctx, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error importing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Imported %d articles (%s), %d kept, %d failed\n",
		result.Imported, crawl.FormatBytes(result.Bytes), result.Skipped, result.Failed)
	return nil
}

func localPages(dir string, filter *folio.URLFilter) ([]string, error) {
	all, err := fs.ListHTML(dir)
	if err != nil {
		return nil, err
	}
	urls := []string{}
	for _, u := range all {
		if filter.Match(u) {
			urls = append(urls, u)
		}
	}
	return urls, nil
}
