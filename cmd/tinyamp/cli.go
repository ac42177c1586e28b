package main

import (
	"context"
	"io"
	"time"

	"github.com/tinyamp/tinyamp"
	"github.com/tinyamp/tinyamp/ingest"
	"github.com/tinyamp/tinyamp/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Venues   tinyamp.VenueService
	Events   tinyamp.EventService
	Pipeline *ingest.Pipeline
	Configs  []tinyamp.VenueConfig
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Import ImportCmd `cmd:"" help:"Scrape configured venues and store events"`
	Venues VenuesCmd `cmd:"" help:"List stored venues"`
	Events EventsCmd `cmd:"" help:"List stored events"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	ConfigDir   string        `short:"C" help:"Directory of venue config YAML files (defaults to the built-in SF set)"`
	Venue       string        `short:"v" help:"Scrape only the venue with this slug"`
	DryRun      bool          `short:"n" help:"Assemble candidates without storing them"`
	OutDir      string        `short:"o" default:"candidates" help:"Directory for dry-run candidate artifacts"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent venue limit"`
	RPS         float64       `default:"1.0" help:"Max requests per second per domain"`
	Timeout     time.Duration `default:"10s" help:"Per-request fetch timeout"`
}

// VenuesCmd is the "venues" subcommand.
type VenuesCmd struct{}

// EventsCmd is the "events" subcommand.
type EventsCmd struct {
	Venue string `short:"v" help:"Filter by venue slug"`
}
