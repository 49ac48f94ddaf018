package ingestor

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/tvheadless/m3ugen/internal/models"
	"github.com/tvheadless/m3ugen/pkg/httpclient"
	"github.com/tvheadless/m3ugen/pkg/xtream"
)

const defaultXtreamTimeout = 2 * time.Minute

// XtreamHandler handles ingestion of Xtream-Codes panel sources.
type XtreamHandler struct {
	clientConfig httpclient.Config
	logger       *slog.Logger
}

// NewXtreamHandler creates a new Xtream handler with default settings.
func NewXtreamHandler() *XtreamHandler {
	cfg := httpclient.DefaultConfig()
	cfg.Timeout = defaultXtreamTimeout
	return &XtreamHandler{clientConfig: cfg}
}

// WithHTTPClientConfig sets a custom HTTP client configuration.
func (h *XtreamHandler) WithHTTPClientConfig(cfg httpclient.Config) *XtreamHandler {
	h.clientConfig = cfg
	return h
}

// WithLogger sets a structured logger for the handler.
func (h *XtreamHandler) WithLogger(logger *slog.Logger) *XtreamHandler {
	h.logger = logger
	return h
}

// Type returns the source type this handler supports.
func (h *XtreamHandler) Type() models.SourceType {
	return models.SourceTypeXtream
}

// Validate checks if the source configuration is valid for Xtream ingestion.
func (h *XtreamHandler) Validate(source *models.Source) error {
	if source == nil {
		return fmt.Errorf("source is nil")
	}
	if source.Type != models.SourceTypeXtream {
		return fmt.Errorf("source type must be xtream, got %s", source.Type)
	}
	if source.Host == "" {
		return fmt.Errorf("host is required for xtream sources")
	}
	if source.Username == "" || source.Password == "" {
		return fmt.Errorf("credentials are required for xtream sources")
	}
	return nil
}

// Ingest authenticates against the panel, fetches categories and live
// streams, and yields one channel per stream. A failed category fetch
// degrades to the default group rather than failing the source.
func (h *XtreamHandler) Ingest(ctx context.Context, source *models.Source, callback ChannelCallback) (Stats, error) {
	var stats Stats

	if err := h.Validate(source); err != nil {
		return stats, fmt.Errorf("validation failed: %w", err)
	}

	breaker := httpclient.DefaultManager.GetOrCreate("panel-" + source.Host)
	httpClient := httpclient.NewWithBreaker(h.clientConfig, breaker)

	client := xtream.NewClient(
		source.Host,
		source.Username,
		source.Password,
		xtream.WithHTTPClient(httpClient.StandardClient()),
	)

	auth, err := client.GetAuthInfo(ctx)
	if err != nil {
		return stats, fmt.Errorf("checking panel connection: %w", err)
	}
	if !auth.Authenticated() {
		return stats, fmt.Errorf("panel rejected credentials for user %q", source.Username)
	}

	categoryMap := h.fetchCategories(ctx, client, source)

	streams, err := client.GetLiveStreams(ctx, "")
	if err != nil {
		return stats, fmt.Errorf("fetching live streams: %w", err)
	}

	for _, stream := range streams {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		stats.Processed++

		if stream.StreamID.Int() == 0 {
			stats.Skipped++
			continue
		}

		channel := h.streamToChannel(stream, source.ID, client, categoryMap)
		if err := channel.Validate(); err != nil {
			stats.Skipped++
			continue
		}

		if err := callback(channel); err != nil {
			return stats, fmt.Errorf("callback error: %w", err)
		}
		stats.Emitted++
	}

	if stats.Skipped > 0 && h.logger != nil {
		h.logger.Warn("skipped streams during panel ingestion",
			slog.Int("skipped", stats.Skipped),
			slog.Int("total_streams", len(streams)),
			slog.String("source", source.Name),
		)
	}

	return stats, nil
}

// fetchCategories builds the category id to name map. On failure every
// stream falls back to the default group.
func (h *XtreamHandler) fetchCategories(ctx context.Context, client *xtream.Client, source *models.Source) map[string]string {
	categories, err := client.GetLiveCategories(ctx)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("fetching categories failed, using default group",
				slog.String("source", source.Name),
				slog.String("error", err.Error()),
			)
		}
		return nil
	}

	categoryMap := make(map[string]string, len(categories))
	for _, cat := range categories {
		categoryMap[cat.CategoryID.String()] = cat.CategoryName
	}
	return categoryMap
}

// streamToChannel converts a panel stream record to a channel.
func (h *XtreamHandler) streamToChannel(stream xtream.Stream, sourceID models.ULID, client *xtream.Client, categoryMap map[string]string) *models.Channel {
	channel := &models.Channel{
		ID:         models.NewULID(),
		SourceID:   sourceID,
		ExtID:      strconv.FormatInt(stream.StreamID.Int(), 10),
		TvgID:      stream.EPGChannelID,
		TvgLogo:    stream.StreamIcon,
		GroupTitle: categoryMap[stream.CategoryID.String()],
		Name:       stream.Name,
		StreamURL:  client.LiveStreamURL(stream.StreamID.Int(), ""),
	}
	channel.ApplyDefaults()
	return channel
}
