package main

import (
	"fmt"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/build"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	unlock, err := deps.Lock()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}
	defer unlock()

	report, err := deps.Builder.Build(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	if n := build.Count(report.Backfill, build.ActionAssigned); n > 0 {
		fmt.Fprintf(deps.Stdout, "Assigned %d reference IDs\n", n)
	}
	for _, locale := range folio.Locales {
		lr := report.Locales[locale]
		if lr == nil {
			continue
		}
		status := "unchanged"
		if lr.Written {
			status = "written"
		}
		fmt.Fprintf(deps.Stdout, "%s: %d documents, %d tokens -> %s (%s)\n",
			locale, lr.Indexed, lr.Tokens, lr.Asset, status)
	}
	fmt.Fprintf(deps.Stdout, "%d reference groups\n", report.Groups)

	for _, w := range report.Warnings {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", w)
	}
	return nil
}
