package main

import (
	"fmt"

	"github.com/fwojciec/folio"
)

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	for _, locale := range folio.Locales {
		deps.Loader.Prefetch(locale)
	}
	if err := deps.Serve(deps.Ctx, c.Addr); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
