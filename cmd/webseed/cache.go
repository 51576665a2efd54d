package main

import (
	"fmt"

	"github.com/fwojciec/webseed"
)

// Run executes the cache clean command.
func (c *CacheCleanCmd) Run(deps *Dependencies) error {
	if err := deps.Cache.Clear(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webseed.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Cache cleared")
	return nil
}

// Run executes the cache path command.
func (c *CachePathCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, deps.CachePath)
	return nil
}
