// Package ingestor provides source ingestion handlers that normalize raw
// channel definitions into channel records.
package ingestor

import (
	"context"

	"github.com/tvheadless/m3ugen/internal/models"
)

// SourceHandler defines the interface for processing different source types.
type SourceHandler interface {
	// Type returns the source type this handler supports.
	Type() models.SourceType

	// Ingest processes a source and yields channels via the callback.
	// The callback is called for each normalized channel, allowing
	// streaming processing. If the callback returns an error, ingestion
	// stops and the error is returned.
	Ingest(ctx context.Context, source *models.Source, callback ChannelCallback) (Stats, error)

	// Validate checks if the source configuration is valid for this handler.
	Validate(source *models.Source) error
}

// ChannelCallback is called for each channel during ingestion.
// Returning an error stops the ingestion process.
type ChannelCallback func(channel *models.Channel) error

// Stats contains counters from a single source ingestion.
type Stats struct {
	// Processed is the number of raw records seen.
	Processed int

	// Emitted is the number of channels passed to the callback.
	Emitted int

	// Skipped is the number of records dropped (empty URL, malformed
	// line, missing stream id).
	Skipped int
}

// Add accumulates another set of counters into s.
func (s *Stats) Add(other Stats) {
	s.Processed += other.Processed
	s.Emitted += other.Emitted
	s.Skipped += other.Skipped
}
