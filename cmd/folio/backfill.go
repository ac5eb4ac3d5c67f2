package main

import (
	"fmt"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/build"
)

// Run executes the backfill command. Problems with single files are
// reported and the run continues.
func (c *BackfillCmd) Run(deps *Dependencies) error {
	locales := folio.Locales
	if c.Locale != "" {
		l, err := folio.ParseLocale(c.Locale)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
			return err
		}
		locales = []folio.Locale{l}
	}

	unlock, err := deps.Lock()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}
	defer unlock()

	var all []build.BackfillEntry
	for _, locale := range locales {
		items, err := deps.Source.ListItems(deps.Ctx, locale)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
			return err
		}
		entries := deps.Backfiller.Backfill(deps.Ctx, items)
		for _, e := range entries {
			switch e.Action {
			case build.ActionAssigned:
				fmt.Fprintf(deps.Stdout, "%-8s %s %s\n", e.Action, e.Path, e.ReferenceID)
			case build.ActionPresent:
				fmt.Fprintf(deps.Stdout, "%-8s %s\n", e.Action, e.Path)
			default:
				fmt.Fprintf(deps.Stdout, "%-8s %s: %s\n", e.Action, e.Path, folio.ErrorMessage(e.Err))
			}
		}
		all = append(all, entries...)
	}

	fmt.Fprintf(deps.Stdout, "\n%d assigned, %d present, %d skipped, %d failed\n",
		build.Count(all, build.ActionAssigned),
		build.Count(all, build.ActionPresent),
		build.Count(all, build.ActionSkipped),
		build.Count(all, build.ActionFailed))
	return nil
}
