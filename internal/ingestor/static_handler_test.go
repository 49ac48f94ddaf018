package ingestor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tvheadless/m3ugen/internal/models"
)

func TestStaticHandler_Type(t *testing.T) {
	h := NewStaticHandler()
	if h.Type() != models.SourceTypeStatic {
		t.Errorf("expected type %s, got %s", models.SourceTypeStatic, h.Type())
	}
}

func TestStaticHandler_Validate(t *testing.T) {
	h := NewStaticHandler()

	if err := h.Validate(nil); err == nil {
		t.Error("expected error for nil source")
	}
	if err := h.Validate(&models.Source{Type: models.SourceTypeText}); err == nil {
		t.Error("expected error for wrong source type")
	}
	if err := h.Validate(&models.Source{Type: models.SourceTypeStatic}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStaticHandler_Ingest(t *testing.T) {
	h := NewStaticHandler()

	source := &models.Source{
		ID:   models.NewULID(),
		Name: "config channels",
		Type: models.SourceTypeStatic,
		Channels: []models.StaticChannel{
			{Name: "BBC One", Logo: "http://x/bbc.png", URL: "http://h/1.ts", Group: "UK"},
			{Name: "No Stream", Logo: "http://x/n.png"},
			{URL: "http://h/2.ts"},
		},
	}

	var channels []*models.Channel
	stats, err := h.Ingest(context.Background(), source, func(ch *models.Channel) error {
		channels = append(channels, ch)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Processed != 3 || stats.Emitted != 2 || stats.Skipped != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if len(channels) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(channels))
	}

	first := channels[0]
	if first.Name != "BBC One" || first.GroupTitle != "UK" || first.TvgLogo != "http://x/bbc.png" {
		t.Errorf("unexpected first channel: %+v", first)
	}
	if first.SourceID != source.ID {
		t.Error("expected channel to carry the source ID")
	}
	if first.ID.IsZero() {
		t.Error("expected a generated channel ID")
	}

	// Name and group defaults apply to the nameless entry.
	second := channels[1]
	if second.Name != models.DefaultChannelName {
		t.Errorf("expected default name, got %q", second.Name)
	}
	if second.GroupTitle != models.DefaultGroup {
		t.Errorf("expected default group, got %q", second.GroupTitle)
	}
}

func TestStaticHandler_CallbackError(t *testing.T) {
	h := NewStaticHandler()
	errStop := errors.New("stop")

	source := &models.Source{
		Type:     models.SourceTypeStatic,
		Channels: []models.StaticChannel{{Name: "A", URL: "http://h/a"}},
	}

	_, err := h.Ingest(context.Background(), source, func(ch *models.Channel) error {
		return errStop
	})
	if !errors.Is(err, errStop) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if !strings.Contains(err.Error(), "callback error") {
		t.Errorf("expected wrapped callback error, got %v", err)
	}
}

func TestStaticHandler_ContextCancelled(t *testing.T) {
	h := NewStaticHandler()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &models.Source{
		Type:     models.SourceTypeStatic,
		Channels: []models.StaticChannel{{Name: "A", URL: "http://h/a"}},
	}

	_, err := h.Ingest(ctx, source, func(ch *models.Channel) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
