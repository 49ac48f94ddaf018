package models

import (
	"errors"
	"testing"
)

func TestSource_Validate(t *testing.T) {
	tests := []struct {
		name    string
		source  Source
		wantErr error
	}{
		{
			name:   "valid static",
			source: Source{Name: "config", Type: SourceTypeStatic},
		},
		{
			name:   "valid text",
			source: Source{Name: "list", Type: SourceTypeText, Path: "channels.txt"},
		},
		{
			name: "valid xtream",
			source: Source{
				Name: "panel", Type: SourceTypeXtream,
				Host: "http://h", Username: "u", Password: "p",
			},
		},
		{
			name:    "unknown type",
			source:  Source{Name: "x", Type: "rss"},
			wantErr: ErrInvalidSourceType,
		},
		{
			name:    "text without path",
			source:  Source{Name: "list", Type: SourceTypeText},
			wantErr: ErrPathRequired,
		},
		{
			name:    "xtream without host",
			source:  Source{Name: "panel", Type: SourceTypeXtream, Username: "u", Password: "p"},
			wantErr: ErrHostRequired,
		},
		{
			name:    "xtream without credentials",
			source:  Source{Name: "panel", Type: SourceTypeXtream, Host: "http://h"},
			wantErr: ErrCredentialsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.source.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSource_Sanitize(t *testing.T) {
	s := Source{
		Name:     "  panel ",
		Host:     " http://h:8080/ ",
		Username: " u ",
		Password: " p ",
	}
	s.Sanitize()

	if s.Name != "panel" {
		t.Errorf("unexpected name %q", s.Name)
	}
	if s.Host != "http://h:8080" {
		t.Errorf("expected trailing slash stripped, got %q", s.Host)
	}
	if s.Username != "u" || s.Password != "p" {
		t.Error("expected credentials trimmed")
	}
}

func TestULID(t *testing.T) {
	id := NewULID()
	if id.IsZero() {
		t.Fatal("NewULID returned zero value")
	}

	parsed, err := ParseULID(id.String())
	if err != nil {
		t.Fatalf("round-trip parse failed: %v", err)
	}
	if parsed != id {
		t.Errorf("expected %s, got %s", id, parsed)
	}

	if _, err := ParseULID("not-a-ulid"); err == nil {
		t.Error("expected error for invalid ULID")
	}
}
