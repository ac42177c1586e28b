package slog

import (
	"log/slog"
	"time"

	"github.com/tinyamp/tinyamp"
)

// Ensure LoggingExtractor implements tinyamp.Extractor.
var _ tinyamp.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   tinyamp.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next tinyamp.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs per-venue counts.
func (e *LoggingExtractor) Extract(html string, cfg tinyamp.VenueConfig) (candidates []tinyamp.RawCandidate, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"venue", cfg.Slug,
			"bytes", len(html),
			"candidates", len(candidates),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, cfg)
}
