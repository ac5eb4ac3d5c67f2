package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/folio"
)

// Run executes the resolve command. Without a sibling the target locale's
// root is printed, matching the site's language switcher.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	id := c.ID
	if strings.HasPrefix(id, "/") {
		var err error
		if id, err = folio.DocumentIDFromRoute(id); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
			return err
		}
	}

	doc, err := deps.Documents.FindDocumentByID(deps.Ctx, id)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	target := doc.Locale.Other()
	if c.Locale != "" {
		if target, err = folio.ParseLocale(c.Locale); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
			return err
		}
	}

	if doc.Locale == target {
		fmt.Fprintln(deps.Stdout, doc.Path)
		return nil
	}

	path, err := deps.Siblings.ResolveSibling(deps.Ctx, doc, target)
	switch {
	case folio.ErrorCode(err) == folio.ENOTFOUND:
		fmt.Fprintf(deps.Stderr, "no %s sibling for %s, using locale root\n", target, doc.ID)
		path = target.Root()
	case err != nil:
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, path)
	return nil
}
