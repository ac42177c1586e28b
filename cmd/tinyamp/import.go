package main

import (
	"fmt"

	"github.com/tinyamp/tinyamp"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	result, err := deps.Pipeline.Run(deps.Ctx, deps.Configs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tinyamp.ErrorMessage(err))
		return err
	}

	if c.DryRun {
		fmt.Fprintf(deps.Stdout, "Dry run: candidates written to %s\n", c.OutDir)
	}
	fmt.Fprintf(deps.Stdout, "Scraped %d venue(s): %d created, %d duplicate, %d invalid",
		result.VenuesScraped, result.Created, result.SkippedDuplicate, result.SkippedInvalid)
	if result.PagesFailed > 0 || result.CandidatesFailed > 0 || result.VenuesFailed > 0 {
		fmt.Fprintf(deps.Stdout, " (%d page(s), %d candidate(s), %d venue(s) failed)",
			result.PagesFailed, result.CandidatesFailed, result.VenuesFailed)
	}
	fmt.Fprintln(deps.Stdout)

	return nil
}
