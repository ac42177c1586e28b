package ingest

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/tinyamp/tinyamp"
	"gopkg.in/yaml.v3"
)

// LoadVenueConfigs reads every *.yaml file in dir as one venue config.
// New venues are data: dropping a file into the config directory is the
// whole integration.
func LoadVenueConfigs(dir string) ([]tinyamp.VenueConfig, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	var cfgs []tinyamp.VenueConfig
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		var cfg tinyamp.VenueConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, tinyamp.Errorf(tinyamp.EINVALID, "parsing %s: %v", filepath.Base(path), err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, tinyamp.Errorf(tinyamp.EINVALID, "%s: %s", filepath.Base(path), tinyamp.ErrorMessage(err))
		}

		cfgs = append(cfgs, cfg)
	}

	return cfgs, nil
}

// DefaultVenueConfigs returns the built-in San Francisco venue set used
// when no config directory is given.
func DefaultVenueConfigs() []tinyamp.VenueConfig {
	return []tinyamp.VenueConfig{
		{
			Name:    "The Independent",
			Slug:    "the-independent",
			URLs:    []string{"https://www.theindependentsf.com/"},
			Address: "628 Divisadero St",
			City:    "San Francisco",
		},
		{
			Name:    "Bottom of the Hill",
			Slug:    "bottom-of-the-hill",
			URLs:    []string{"https://www.bottomofthehill.com/calendar.html"},
			Address: "1233 17th St",
			City:    "San Francisco",
		},
		{
			Name:    "Great American Music Hall",
			Slug:    "great-american-music-hall",
			URLs:    []string{"https://gamh.com/calendar/"},
			Dynamic: true,
			Address: "859 O'Farrell St",
			City:    "San Francisco",
		},
		{
			Name:    "The Fillmore",
			Slug:    "the-fillmore",
			URLs:    []string{"https://www.thefillmore.com/calendar/"},
			Dynamic: true,
			Address: "1805 Geary Blvd",
			City:    "San Francisco",
		},
		{
			Name:            "The Chapel",
			Slug:            "the-chapel",
			URLs:            []string{"https://thechapelsf.com/music/"},
			DiscoverSitemap: true,
			Address:         "777 Valencia St",
			City:            "San Francisco",
		},
		{
			Name:    "Cafe du Nord",
			Slug:    "cafe-du-nord",
			URLs:    []string{"https://www.cafedunord.com/"},
			Address: "2174 Market St",
			City:    "San Francisco",
		},
	}
}
