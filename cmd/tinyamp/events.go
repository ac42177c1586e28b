package main

import (
	"fmt"

	"github.com/tinyamp/tinyamp"
)

// Run executes the events command.
func (c *EventsCmd) Run(deps *Dependencies) error {
	events, err := deps.Events.FindEvents(deps.Ctx, c.Venue)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tinyamp.ErrorMessage(err))
		return err
	}

	if len(events) == 0 {
		fmt.Fprintln(deps.Stdout, "No events found. Use 'tinyamp import' to scrape some.")
		return nil
	}

	for _, e := range events {
		price := e.Price
		if e.PriceIsEstimated {
			price += " (est)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			e.Date.Format("2006-01-02"), e.VenueSlug, e.Title, price)
	}

	return nil
}
