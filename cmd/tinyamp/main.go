package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/tinyamp/tinyamp"
	"github.com/tinyamp/tinyamp/bloom"
	"github.com/tinyamp/tinyamp/fs"
	"github.com/tinyamp/tinyamp/goquery"
	"github.com/tinyamp/tinyamp/googleplaces"
	"github.com/tinyamp/tinyamp/htmltomarkdown"
	tahttp "github.com/tinyamp/tinyamp/http"
	"github.com/tinyamp/tinyamp/ingest"
	"github.com/tinyamp/tinyamp/lastfm"
	"github.com/tinyamp/tinyamp/openai"
	"github.com/tinyamp/tinyamp/rod"
	taslog "github.com/tinyamp/tinyamp/slog"
	"github.com/tinyamp/tinyamp/sqlite"
	"github.com/tinyamp/tinyamp/trafilatura"
)

// discoveryExpectedURLs sizes the Bloom filter used for sitemap discovery.
const (
	discoveryExpectedURLs      = 10000
	discoveryFalsePositiveRate = 0.01
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	VenueService  tinyamp.VenueService
	ArtistService tinyamp.ArtistService
	EventService  tinyamp.EventService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tinyamp"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tinyamp --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set TINYAMP_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.VenueService = sqlite.NewVenueService(m.DB)
	m.ArtistService = sqlite.NewArtistService(m.DB)
	m.EventService = sqlite.NewEventService(m.DB)
	deps.DB = m.DB
	deps.Venues = m.VenueService
	deps.Events = m.EventService

	if cmd == "import" {
		if err := m.wireImport(cli, deps, stderr); err != nil {
			return err
		}
		if deps.Pipeline.Dynamic != nil {
			defer deps.Pipeline.Dynamic.Close()
		}
	}

	return kongCtx.Run(deps)
}

// wireImport builds the scrape pipeline for the import command.
func (m *Main) wireImport(cli *CLI, deps *Dependencies, stderr io.Writer) error {
	cfgs := ingest.DefaultVenueConfigs()
	if cli.Import.ConfigDir != "" {
		loaded, err := ingest.LoadVenueConfigs(cli.Import.ConfigDir)
		if err != nil {
			return fmt.Errorf("loading venue configs: %w", err)
		}
		cfgs = loaded
	}
	if cli.Import.Venue != "" {
		var filtered []tinyamp.VenueConfig
		for _, cfg := range cfgs {
			if cfg.Slug == cli.Import.Venue {
				filtered = append(filtered, cfg)
			}
		}
		if len(filtered) == 0 {
			return fmt.Errorf("no venue config with slug %q", cli.Import.Venue)
		}
		cfgs = filtered
	}
	deps.Configs = cfgs

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	content := trafilatura.NewExtractor()
	var extractor tinyamp.Extractor = goquery.DefaultStrategies(content)
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		extractor = goquery.NewStrategies(extractor, openai.NewExtractor(apiKey, content))
	}

	static := taslog.NewLoggingFetcher(tahttp.NewFetcher(tahttp.WithTimeout(cli.Import.Timeout)), logger)

	needsDynamic := false
	for _, cfg := range cfgs {
		if cfg.Dynamic {
			needsDynamic = true
			break
		}
	}
	var dynamic tinyamp.Fetcher
	if needsDynamic {
		browser, err := rod.NewFetcher(rod.WithTimeout(cli.Import.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for dynamic venues")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		dynamic = taslog.NewLoggingFetcher(browser, logger)
	}

	seen := bloom.NewFilter(discoveryExpectedURLs, discoveryFalsePositiveRate)

	deps.Pipeline = &ingest.Pipeline{
		Static:       static,
		Dynamic:      dynamic,
		Extractor:    taslog.NewLoggingExtractor(extractor, logger),
		Discoverer:   tahttp.NewSitemapDiscoverer(nil, seen),
		Venues:       m.VenueService,
		Artists:      m.ArtistService,
		Events:       taslog.NewLoggingEventService(m.EventService, logger),
		Places:       googleplaces.NewEnricher(os.Getenv("GOOGLE_PLACES_API_KEY"), nil),
		ArtistInfo:   lastfm.NewEnricher(os.Getenv("LASTFM_API_KEY"), nil),
		Descriptions: htmltomarkdown.NewConverter(),
		RateLimiter:  ingest.NewDomainLimiter(cli.Import.RPS),
		Logger:       logger,
		Concurrency:  cli.Import.Concurrency,
		DryRun:       cli.Import.DryRun,
	}
	if cli.Import.DryRun {
		deps.Pipeline.Candidates = fs.NewWriter(cli.Import.OutDir)
	}

	return nil
}

func defaultDBPath() string {
	if path := os.Getenv("TINYAMP_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "tinyamp.db"
	}
	dir := filepath.Join(home, ".tinyamp")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "tinyamp.db")
}
