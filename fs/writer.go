// Package fs writes scrape artifacts to the local filesystem.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/tinyamp/tinyamp"
)

// Ensure Writer implements tinyamp.CandidateWriter at compile time.
var _ tinyamp.CandidateWriter = (*Writer)(nil)

// Writer writes a run's assembled candidates as JSON files, one per
// venue, for dry-run inspection before anything touches the database.
type Writer struct {
	baseDir string

	// now is swappable for tests.
	now func() time.Time
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir, now: time.Now}
}

// artifact is the on-disk shape of one venue's dry-run output.
type artifact struct {
	VenueSlug  string                   `json:"venueSlug"`
	ScrapedAt  time.Time                `json:"scrapedAt"`
	Count      int                      `json:"count"`
	Candidates []tinyamp.EventCandidate `json:"candidates"`
}

// WriteCandidates writes the candidates for one venue to
// <baseDir>/<venueSlug>/<date>.json.
func (w *Writer) WriteCandidates(ctx context.Context, venueSlug string, candidates []tinyamp.EventCandidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if venueSlug == "" {
		return tinyamp.Errorf(tinyamp.EINVALID, "venue slug required")
	}

	now := w.now().UTC()
	dir := filepath.Join(w.baseDir, venueSlug)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(artifact{
		VenueSlug:  venueSlug,
		ScrapedAt:  now,
		Count:      len(candidates),
		Candidates: candidates,
	}, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(dir, now.Format("2006-01-02")+".json")
	return os.WriteFile(path, append(data, '\n'), 0644)
}
