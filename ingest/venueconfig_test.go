package ingest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinyamp/tinyamp"
	"github.com/tinyamp/tinyamp/ingest"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadVenueConfigs(t *testing.T) {
	t.Parallel()

	t.Run("loads configs sorted by filename", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeConfig(t, dir, "independent.yaml", `
name: The Independent
slug: the-independent
urls:
  - https://www.theindependentsf.com/
selectors:
  - ".tw-event"
datePatterns:
  - '\w+ \d{1,2}, \d{4}'
`)
		writeConfig(t, dir, "chapel.yaml", `
name: The Chapel
slug: the-chapel
urls:
  - https://thechapelsf.com/music/
dynamic: true
discoverSitemap: true
`)

		cfgs, err := ingest.LoadVenueConfigs(dir)

		require.NoError(t, err)
		require.Len(t, cfgs, 2)
		assert.Equal(t, "the-chapel", cfgs[0].Slug)
		assert.True(t, cfgs[0].Dynamic)
		assert.True(t, cfgs[0].DiscoverSitemap)
		assert.Equal(t, "the-independent", cfgs[1].Slug)
		assert.Equal(t, []string{".tw-event"}, cfgs[1].Selectors)
	})

	t.Run("invalid config fails the load", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeConfig(t, dir, "broken.yaml", `
name: No URLs Venue
slug: no-urls
`)

		_, err := ingest.LoadVenueConfigs(dir)

		require.Error(t, err)
		assert.Equal(t, tinyamp.EINVALID, tinyamp.ErrorCode(err))
	})

	t.Run("empty directory yields no configs", func(t *testing.T) {
		t.Parallel()

		cfgs, err := ingest.LoadVenueConfigs(t.TempDir())

		require.NoError(t, err)
		assert.Empty(t, cfgs)
	})
}

func TestDefaultVenueConfigs(t *testing.T) {
	t.Parallel()

	cfgs := ingest.DefaultVenueConfigs()

	require.NotEmpty(t, cfgs)
	for _, cfg := range cfgs {
		assert.NoError(t, cfg.Validate())
		assert.Equal(t, "San Francisco", cfg.City)
	}
}
