package ingestor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tvheadless/m3ugen/internal/models"
)

func writeChannelList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "channels.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing channel list: %v", err)
	}
	return path
}

func TestTextHandler_Type(t *testing.T) {
	h := NewTextHandler()
	if h.Type() != models.SourceTypeText {
		t.Errorf("expected type %s, got %s", models.SourceTypeText, h.Type())
	}
}

func TestTextHandler_Validate(t *testing.T) {
	h := NewTextHandler()

	if err := h.Validate(nil); err == nil {
		t.Error("expected error for nil source")
	}
	if err := h.Validate(&models.Source{Type: models.SourceTypeText}); err == nil {
		t.Error("expected error for missing path")
	}
	if err := h.Validate(&models.Source{Type: models.SourceTypeText, Path: "channels.txt"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTextHandler_Ingest(t *testing.T) {
	content := `BBC One,http://panel.example.com/live/user/pass/101.ts
Sky Sports,http://panel.example.com/user/pass/102

not a channel line
Broken,http://panel.example.com/102
`
	path := writeChannelList(t, content)

	h := NewTextHandler()
	source := &models.Source{
		ID:        models.NewULID(),
		Name:      "channel list",
		Type:      models.SourceTypeText,
		Path:      path,
		Extension: ".ts",
	}

	var channels []*models.Channel
	stats, err := h.Ingest(context.Background(), source, func(ch *models.Channel) error {
		channels = append(channels, ch)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Processed != 4 || stats.Emitted != 2 || stats.Skipped != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if len(channels) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(channels))
	}

	if channels[0].Name != "BBC One" {
		t.Errorf("unexpected name %q", channels[0].Name)
	}
	if channels[0].StreamURL != "http://panel.example.com/live/user/pass/101.ts" {
		t.Errorf("unexpected URL %q", channels[0].StreamURL)
	}
	if channels[1].StreamURL != "http://panel.example.com/live/user/pass/102.ts" {
		t.Errorf("expected live segment inserted, got %q", channels[1].StreamURL)
	}
	if channels[0].GroupTitle != models.DefaultGroup {
		t.Errorf("expected default group, got %q", channels[0].GroupTitle)
	}
}

func TestTextHandler_MissingFile(t *testing.T) {
	h := NewTextHandler()
	source := &models.Source{
		Type: models.SourceTypeText,
		Path: filepath.Join(t.TempDir(), "missing.txt"),
	}

	if _, err := h.Ingest(context.Background(), source, func(ch *models.Channel) error { return nil }); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRewriteStreamURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ext  string
		want string
		ok   bool
	}{
		{
			name: "full URL with live segment",
			raw:  "http://h.example.com/live/user/pass/42.ts",
			ext:  ".ts",
			want: "http://h.example.com/live/user/pass/42.ts",
			ok:   true,
		},
		{
			name: "without live segment",
			raw:  "http://h.example.com/user/pass/42",
			ext:  ".ts",
			want: "http://h.example.com/live/user/pass/42.ts",
			ok:   true,
		},
		{
			name: "m3u8 extension",
			raw:  "http://h.example.com/user/pass/42.ts",
			ext:  ".m3u8",
			want: "http://h.example.com/live/user/pass/42.m3u8",
			ok:   true,
		},
		{
			name: "no extension",
			raw:  "http://h.example.com/user/pass/42",
			ext:  "",
			want: "http://h.example.com/live/user/pass/42",
			ok:   true,
		},
		{
			name: "bare host shape",
			raw:  "h.example.com/user/pass/42",
			ext:  ".ts",
			want: "h.example.com/live/user/pass/42.ts",
			ok:   true,
		},
		{
			name: "too few segments",
			raw:  "http://h.example.com/42.ts",
			ext:  ".ts",
			ok:   false,
		},
		{
			name: "empty id",
			raw:  "http://h.example.com/user/pass/",
			ext:  ".ts",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := rewriteStreamURL(tt.raw, tt.ext)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v (url %q)", tt.ok, ok, got)
			}
			if ok && got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
