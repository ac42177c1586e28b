package main

import (
	"fmt"

	"github.com/tinyamp/tinyamp"
)

// Run executes the venues command.
func (c *VenuesCmd) Run(deps *Dependencies) error {
	venues, err := deps.Venues.FindVenues(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tinyamp.ErrorMessage(err))
		return err
	}

	if len(venues) == 0 {
		fmt.Fprintln(deps.Stdout, "No venues found. Use 'tinyamp import' to scrape some.")
		return nil
	}

	for _, v := range venues {
		line := fmt.Sprintf("%s  %s", v.Slug, v.Name)
		if v.Rating > 0 {
			line += fmt.Sprintf("  (%.1f, %d reviews)", v.Rating, v.ReviewCount)
		}
		fmt.Fprintln(deps.Stdout, line)
	}

	return nil
}
