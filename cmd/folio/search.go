package main

import (
	"fmt"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/render"
	"github.com/fwojciec/folio/search"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	locale, err := folio.ParseLocale(c.Locale)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	opts := folio.DefaultSearchOptions()
	if deps.Config != nil {
		opts = deps.Config.SearchOptions()
	}
	if c.Limit > 0 {
		opts.Limit = c.Limit
	}

	session := search.NewSession(deps.Loader, locale, search.WithSearchOptions(opts))
	out, err := session.Query(deps.Ctx, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	if out.State != folio.SearchResults {
		fmt.Fprintln(deps.Stdout, render.NewRenderer(locale).StatusText(out))
		return nil
	}

	for i, hit := range out.Hits {
		fmt.Fprintf(deps.Stdout, "%d. %s [%s] (%d)\n   %s\n", i+1, hit.Entry.Title, hit.Entry.Kind, hit.Score, hit.Entry.Path)
	}
	return nil
}
