package ingestor

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tvheadless/m3ugen/internal/models"
)

// TextHandler ingests delimited text channel lists with one "name,url"
// pair per line.
type TextHandler struct {
	logger *slog.Logger
}

// NewTextHandler creates a new text source handler.
func NewTextHandler() *TextHandler {
	return &TextHandler{}
}

// WithLogger sets a structured logger for the handler.
func (h *TextHandler) WithLogger(logger *slog.Logger) *TextHandler {
	h.logger = logger
	return h
}

// Type returns the source type this handler supports.
func (h *TextHandler) Type() models.SourceType {
	return models.SourceTypeText
}

// Validate checks if the source configuration is valid for text ingestion.
func (h *TextHandler) Validate(source *models.Source) error {
	if source == nil {
		return fmt.Errorf("source is nil")
	}
	if source.Type != models.SourceTypeText {
		return fmt.Errorf("source type must be text, got %s", source.Type)
	}
	if source.Path == "" {
		return fmt.Errorf("file path is required for text sources")
	}
	return nil
}

// Ingest reads the channel list line by line. Each line is split once on
// the first comma into a name and a raw URL; the URL is rebuilt from its
// host/user/pass/id path shape with the configured stream extension.
// Lines that do not match are skipped with no channel emitted.
func (h *TextHandler) Ingest(ctx context.Context, source *models.Source, callback ChannelCallback) (Stats, error) {
	var stats Stats

	if err := h.Validate(source); err != nil {
		return stats, fmt.Errorf("validation failed: %w", err)
	}

	f, err := os.Open(source.Path)
	if err != nil {
		return stats, fmt.Errorf("opening channel list: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		stats.Processed++

		name, rawURL, ok := strings.Cut(line, ",")
		if !ok {
			stats.Skipped++
			h.logSkip(source, lineNum, "no comma separator")
			continue
		}

		streamURL, ok := rewriteStreamURL(rawURL, source.Extension)
		if !ok {
			stats.Skipped++
			h.logSkip(source, lineNum, "unrecognized stream URL shape")
			continue
		}

		channel := &models.Channel{
			ID:        models.NewULID(),
			SourceID:  source.ID,
			Name:      strings.TrimSpace(name),
			StreamURL: streamURL,
		}
		channel.ApplyDefaults()

		if err := callback(channel); err != nil {
			return stats, fmt.Errorf("callback error: %w", err)
		}
		stats.Emitted++
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("reading channel list: %w", err)
	}

	return stats, nil
}

func (h *TextHandler) logSkip(source *models.Source, lineNum int, reason string) {
	if h.logger == nil {
		return
	}
	h.logger.Debug("skipping channel list line",
		slog.String("source", source.Name),
		slog.Int("line", lineNum),
		slog.String("reason", reason),
	)
}

// rewriteStreamURL rebuilds a raw stream URL from its host/user/pass/id
// path shape as {host}/live/{user}/{pass}/{id}{ext}. It tolerates an
// existing "live" path segment and a file extension on the id segment.
func rewriteStreamURL(raw, ext string) (string, bool) {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "/")

	segs := strings.Split(raw, "/")
	if len(segs) < 4 {
		return "", false
	}

	id := segs[len(segs)-1]
	if dot := strings.LastIndex(id, "."); dot > 0 {
		id = id[:dot]
	}
	if !isStreamID(id) {
		return "", false
	}
	pass := segs[len(segs)-2]
	user := segs[len(segs)-3]

	hostSegs := segs[:len(segs)-3]
	if n := len(hostSegs); hostSegs[n-1] == "live" {
		hostSegs = hostSegs[:n-1]
	}
	host := strings.Join(hostSegs, "/")

	if host == "" || user == "" || pass == "" {
		return "", false
	}
	return fmt.Sprintf("%s/live/%s/%s/%s%s", host, user, pass, id, ext), true
}

// isStreamID reports whether s is a plain numeric stream identifier.
func isStreamID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
