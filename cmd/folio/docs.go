package main

import (
	"fmt"

	"github.com/fwojciec/folio"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	filter := folio.DocumentFilter{Limit: c.Limit, SortBy: folio.SortByID}
	if c.Recent {
		filter.SortBy = folio.SortByPublishedAt
	}
	if c.Locale != "" {
		l, err := folio.ParseLocale(c.Locale)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
			return err
		}
		filter.Locale = &l
	}
	if c.Collection != "" {
		col, err := folio.ParseCollection(c.Collection)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
			return err
		}
		filter.Collection = &col
	}
	if c.Reference != "" {
		filter.ReferenceID = &c.Reference
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'folio build' to catalog the content tree.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, folio.FormatDocuments(docs))
	return nil
}
