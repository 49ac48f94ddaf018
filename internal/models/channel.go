package models

// Default values applied by normalizers when a source omits a field.
const (
	// DefaultChannelName is used when a source record carries no name.
	DefaultChannelName = "No name"

	// DefaultGroup is used when a source record carries no group or its
	// category cannot be resolved.
	DefaultGroup = "General"
)

// Channel is the normalized channel record produced by source handlers and
// consumed by the playlist writer.
type Channel struct {
	// ID identifies the channel within a run.
	ID ULID `json:"id"`

	// SourceID is the ID of the source this channel came from.
	SourceID ULID `json:"source_id"`

	// ExtID is an external identifier from the source, when one exists.
	// For Xtream sources this is the panel's stream ID.
	ExtID string `json:"ext_id,omitempty"`

	// TvgID is the EPG channel identifier for player EPG linking.
	TvgID string `json:"tvg_id,omitempty"`

	// TvgLogo is the URL to the channel logo.
	TvgLogo string `json:"tvg_logo,omitempty"`

	// GroupTitle is the playlist group the channel is filed under.
	GroupTitle string `json:"group_title,omitempty"`

	// Name is the display name written to the EXTINF line.
	Name string `json:"name"`

	// StreamURL is the playable stream location.
	StreamURL string `json:"stream_url"`
}

// Validate reports whether the channel can be written to a playlist.
// Channels failing validation are dropped, not surfaced as run errors.
func (c *Channel) Validate() error {
	if c.Name == "" {
		return ErrNameRequired
	}
	if c.StreamURL == "" {
		return ErrStreamURLRequired
	}
	return nil
}

// ApplyDefaults fills empty name and group fields with their defaults.
// The stream URL is deliberately not defaulted; a channel without one is
// invalid and gets dropped.
func (c *Channel) ApplyDefaults() {
	if c.Name == "" {
		c.Name = DefaultChannelName
	}
	if c.GroupTitle == "" {
		c.GroupTitle = DefaultGroup
	}
}
