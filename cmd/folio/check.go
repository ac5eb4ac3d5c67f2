package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/goquery"
	"github.com/fwojciec/folio/render"
)

// Run executes the check command. It fails when any page breaks the
// contract.
func (c *CheckCmd) Run(deps *Dependencies) error {
	pages := make(map[string]string, len(c.Files))
	names := c.Files
	if len(names) == 0 {
		for _, locale := range folio.Locales {
			var buf bytes.Buffer
			if err := render.NewRenderer(locale).RenderShell(&buf); err != nil {
				return err
			}
			name := "shell (" + string(locale) + ")"
			pages[name] = buf.String()
			names = append(names, name)
		}
	} else {
		for _, name := range names {
			data, err := os.ReadFile(name)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %v\n", err)
				return err
			}
			pages[name] = string(data)
		}
	}

	failed := 0
	for _, name := range names {
		problems, err := goquery.CheckContract(pages[name])
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", name, folio.ErrorMessage(err))
			return err
		}
		if len(problems) == 0 {
			fmt.Fprintf(deps.Stdout, "ok    %s\n", name)
			continue
		}
		failed++
		fmt.Fprintf(deps.Stdout, "FAIL  %s\n", name)
		for _, p := range problems {
			fmt.Fprintf(deps.Stdout, "      %s\n", p)
		}
	}

	if failed > 0 {
		return folio.Errorf(folio.EINVALID, "%d of %d pages break the search DOM contract", failed, len(names))
	}
	return nil
}
