package main

import (
	"fmt"

	"github.com/alnah/go-mdenrich/internal/slug"
)

// runSlug prints the anchor id of each argument. Arguments share one
// registry, so repeats get -2, -3 suffixes as headings would.
func runSlug(args []string, env *Environment) error {
	if len(args) == 0 {
		fmt.Fprintln(env.Stderr, "Usage: mdenrich slug <text...>")
		return fmt.Errorf("%w: slug needs at least one argument", ErrUsage)
	}

	registry := slug.NewRegistry()
	for _, text := range args {
		fmt.Fprintln(env.Stdout, registry.Unique(text))
	}
	return nil
}
