package ingestor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tvheadless/m3ugen/internal/models"
)

// StaticHandler normalizes channels defined directly in configuration.
type StaticHandler struct {
	logger *slog.Logger
}

// NewStaticHandler creates a new static source handler.
func NewStaticHandler() *StaticHandler {
	return &StaticHandler{}
}

// WithLogger sets a structured logger for the handler.
func (h *StaticHandler) WithLogger(logger *slog.Logger) *StaticHandler {
	h.logger = logger
	return h
}

// Type returns the source type this handler supports.
func (h *StaticHandler) Type() models.SourceType {
	return models.SourceTypeStatic
}

// Validate checks if the source configuration is valid for static ingestion.
func (h *StaticHandler) Validate(source *models.Source) error {
	if source == nil {
		return fmt.Errorf("source is nil")
	}
	if source.Type != models.SourceTypeStatic {
		return fmt.Errorf("source type must be static, got %s", source.Type)
	}
	return nil
}

// Ingest normalizes each configured channel, calling the callback for
// every record with a non-empty URL. Records without a URL are dropped.
func (h *StaticHandler) Ingest(ctx context.Context, source *models.Source, callback ChannelCallback) (Stats, error) {
	var stats Stats

	if err := h.Validate(source); err != nil {
		return stats, fmt.Errorf("validation failed: %w", err)
	}

	for _, raw := range source.Channels {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		stats.Processed++

		channel := &models.Channel{
			ID:         models.NewULID(),
			SourceID:   source.ID,
			Name:       raw.Name,
			TvgLogo:    raw.Logo,
			GroupTitle: raw.Group,
			StreamURL:  raw.URL,
		}
		channel.ApplyDefaults()

		if err := channel.Validate(); err != nil {
			stats.Skipped++
			if h.logger != nil {
				h.logger.Debug("dropping channel without stream URL",
					slog.String("name", channel.Name),
					slog.String("source", source.Name),
				)
			}
			continue
		}

		if err := callback(channel); err != nil {
			return stats, fmt.Errorf("callback error: %w", err)
		}
		stats.Emitted++
	}

	return stats, nil
}
