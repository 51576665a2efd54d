package main

import (
	"fmt"

	"github.com/fwojciec/webseed"
)

// Run executes the probe command: fetch one page, select its main
// content region, and print it as Markdown without touching the cache
// or any output directory.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webseed.ErrorMessage(err))
		return err
	}

	content, err := deps.Prober.ContentHTML(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webseed.ErrorMessage(err))
		return err
	}

	markdown, err := deps.Converter.Convert(content)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webseed.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, markdown)
	return nil
}
