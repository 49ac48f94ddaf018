package models

import (
	"errors"
	"testing"
)

func TestChannel_Validate(t *testing.T) {
	tests := []struct {
		name    string
		channel Channel
		wantErr error
	}{
		{
			name:    "valid",
			channel: Channel{Name: "BBC", StreamURL: "http://h/a"},
		},
		{
			name:    "missing name",
			channel: Channel{StreamURL: "http://h/a"},
			wantErr: ErrNameRequired,
		},
		{
			name:    "missing url",
			channel: Channel{Name: "BBC"},
			wantErr: ErrStreamURLRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.channel.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestChannel_ApplyDefaults(t *testing.T) {
	c := Channel{StreamURL: "http://h/a"}
	c.ApplyDefaults()

	if c.Name != DefaultChannelName {
		t.Errorf("expected default name %q, got %q", DefaultChannelName, c.Name)
	}
	if c.GroupTitle != DefaultGroup {
		t.Errorf("expected default group %q, got %q", DefaultGroup, c.GroupTitle)
	}

	c = Channel{Name: "BBC", GroupTitle: "UK", StreamURL: "http://h/a"}
	c.ApplyDefaults()
	if c.Name != "BBC" || c.GroupTitle != "UK" {
		t.Error("defaults must not overwrite existing values")
	}
}

func TestChannel_ApplyDefaultsKeepsEmptyURL(t *testing.T) {
	c := Channel{Name: "BBC"}
	c.ApplyDefaults()

	if c.StreamURL != "" {
		t.Errorf("expected empty stream url to stay empty, got %q", c.StreamURL)
	}
	if c.Validate() == nil {
		t.Error("expected channel without url to stay invalid")
	}
}
