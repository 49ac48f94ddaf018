// Package playlist orchestrates playlist generation runs: resolving
// sources from configuration, ingesting each in order, and writing the
// M3U output file.
package playlist

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/tvheadless/m3ugen/internal/config"
	"github.com/tvheadless/m3ugen/internal/ingestor"
	"github.com/tvheadless/m3ugen/internal/models"
	"github.com/tvheadless/m3ugen/internal/observability"
	"github.com/tvheadless/m3ugen/pkg/httpclient"
	"github.com/tvheadless/m3ugen/pkg/m3u"
)

const timestampFormat = "2006-01-02 15:04:05"

// SourceResult records the outcome of ingesting one source.
type SourceResult struct {
	Name  string
	Type  models.SourceType
	Stats ingestor.Stats
	Err   error
}

// Result summarizes a generation run.
type Result struct {
	RunID    string
	Output   string
	Written  int
	Duration time.Duration
	Sources  []SourceResult
}

// Generator runs playlist generation from a loaded configuration.
type Generator struct {
	cfg     *config.Config
	factory *ingestor.HandlerFactory
	logger  *slog.Logger
}

// NewGenerator creates a generator. The handler factory is built from
// the configuration's ingest settings.
func NewGenerator(cfg *config.Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	logger = observability.WithComponent(logger, "generator")

	clientCfg := httpclient.DefaultConfig()
	clientCfg.Logger = logger
	if cfg.Ingest.HTTPTimeout > 0 {
		clientCfg.Timeout = time.Duration(cfg.Ingest.HTTPTimeout)
	}
	if cfg.Ingest.RetryAttempts > 0 {
		clientCfg.RetryAttempts = cfg.Ingest.RetryAttempts
	}
	if cfg.Ingest.RetryDelay > 0 {
		clientCfg.RetryDelay = time.Duration(cfg.Ingest.RetryDelay)
	}
	if cfg.Ingest.UserAgent != "" {
		clientCfg.UserAgent = cfg.Ingest.UserAgent
	}
	if cfg.Ingest.MaxResponseSize > 0 {
		clientCfg.MaxResponseSize = int64(cfg.Ingest.MaxResponseSize)
	}

	factory := ingestor.NewHandlerFactory()
	factory.Register(ingestor.NewStaticHandler().WithLogger(logger))
	factory.Register(ingestor.NewTextHandler().WithLogger(logger))
	factory.Register(ingestor.NewXtreamHandler().
		WithHTTPClientConfig(clientCfg).
		WithLogger(logger))

	return &Generator{
		cfg:     cfg,
		factory: factory,
		logger:  logger,
	}
}

// Run ingests every configured source in order and writes the playlist.
// A failing source is logged and skipped; only a write failure is
// returned as an error. The output file is written even when no source
// yields any channel.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := observability.WithRunID(g.logger, runID)

	result := &Result{
		RunID:  runID,
		Output: g.cfg.Output,
	}

	sources := g.sources()
	logger.Info("starting playlist generation",
		slog.Int("sources", len(sources)),
		slog.String("output", g.cfg.Output),
	)

	var channels []*models.Channel
	for _, source := range sources {
		sr := SourceResult{Name: source.Name, Type: source.Type}

		handler, err := g.factory.GetForSource(source)
		if err != nil {
			sr.Err = err
			result.Sources = append(result.Sources, sr)
			logger.Error("no handler for source",
				slog.String("source", source.Name),
				slog.String("type", string(source.Type)),
			)
			continue
		}

		sr.Stats, sr.Err = handler.Ingest(ctx, source, func(ch *models.Channel) error {
			channels = append(channels, ch)
			return nil
		})
		result.Sources = append(result.Sources, sr)

		if sr.Err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			observability.WithError(logger, sr.Err).Error("source ingestion failed, skipping",
				slog.String("source", source.Name),
				slog.String("type", string(source.Type)),
			)
			continue
		}

		logger.Info("source ingested",
			slog.String("source", source.Name),
			slog.String("type", string(source.Type)),
			slog.Int("processed", sr.Stats.Processed),
			slog.Int("emitted", sr.Stats.Emitted),
			slog.Int("skipped", sr.Stats.Skipped),
		)
	}

	written, err := g.write(channels)
	if err != nil {
		return result, fmt.Errorf("writing playlist: %w", err)
	}

	result.Written = written
	result.Duration = time.Since(start)

	logger.Info("playlist written",
		slog.String("output", g.cfg.Output),
		slog.Int("channels", written),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

// sources builds the ordered source list from configuration: static
// channels first, then the text list, then each server in config order.
func (g *Generator) sources() []*models.Source {
	var sources []*models.Source

	if len(g.cfg.Channels) > 0 {
		static := &models.Source{
			ID:   models.NewULID(),
			Name: "config channels",
			Type: models.SourceTypeStatic,
		}
		for _, ch := range g.cfg.Channels {
			static.Channels = append(static.Channels, models.StaticChannel{
				Name:  ch.DisplayName(),
				Logo:  ch.LogoURL(),
				URL:   ch.URL,
				Group: ch.Group,
			})
		}
		sources = append(sources, static)
	}

	if g.cfg.Text.Path != "" {
		sources = append(sources, &models.Source{
			ID:        models.NewULID(),
			Name:      g.cfg.Text.Path,
			Type:      models.SourceTypeText,
			Path:      g.cfg.Text.Path,
			Extension: g.cfg.Text.StreamExtension(),
		})
	}

	for _, server := range g.cfg.Servers {
		name := server.Name
		if name == "" {
			name = server.Host
		}
		src := &models.Source{
			ID:       models.NewULID(),
			Name:     name,
			Type:     models.SourceTypeXtream,
			Host:     server.Host,
			Username: server.Username,
			Password: server.Password,
		}
		src.Sanitize()
		sources = append(sources, src)
	}

	return sources
}

// write creates the parent directory and writes the playlist file with
// truncate semantics. It returns the number of channels written.
func (g *Generator) write(channels []*models.Channel) (int, error) {
	if dir := filepath.Dir(g.cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(g.cfg.Output)
	if err != nil {
		return 0, fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	w := m3u.NewWriter(bw)

	if err := w.WriteHeader(); err != nil {
		return 0, err
	}
	if err := w.WriteComment("Generated: " + time.Now().Format(timestampFormat)); err != nil {
		return 0, err
	}
	if err := w.WriteComment(fmt.Sprintf("Total: %d channels", len(channels))); err != nil {
		return 0, err
	}

	for _, ch := range channels {
		if ch.StreamURL == "" {
			continue
		}
		entry := &m3u.Entry{
			Duration:   -1,
			TvgID:      ch.TvgID,
			TvgLogo:    ch.TvgLogo,
			GroupTitle: ch.GroupTitle,
			Title:      ch.Name,
			URL:        ch.StreamURL,
		}
		if err := w.WriteEntry(entry); err != nil {
			return w.Count(), err
		}
	}

	if err := bw.Flush(); err != nil {
		return w.Count(), fmt.Errorf("flushing output: %w", err)
	}
	if err := f.Sync(); err != nil {
		return w.Count(), fmt.Errorf("syncing output: %w", err)
	}
	return w.Count(), nil
}
