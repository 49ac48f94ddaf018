package models

import "strings"

// SourceType represents the kind of channel source.
type SourceType string

const (
	// SourceTypeStatic represents channels defined directly in configuration.
	SourceTypeStatic SourceType = "static"
	// SourceTypeText represents a delimited "name,url" text file.
	SourceTypeText SourceType = "text"
	// SourceTypeXtream represents an Xtream-Codes panel API.
	SourceTypeXtream SourceType = "xtream"
)

// Valid reports whether the source type is one of the known kinds.
func (t SourceType) Valid() bool {
	switch t {
	case SourceTypeStatic, SourceTypeText, SourceTypeXtream:
		return true
	}
	return false
}

// StaticChannel is one raw channel definition carried by a static source.
type StaticChannel struct {
	Name  string
	Logo  string
	URL   string
	Group string
}

// Source is a tagged variant describing where channels come from.
// Exactly one of the type-specific field groups is meaningful:
// Channels for static, Path for text, Host/Username/Password for xtream.
type Source struct {
	// ID identifies the source within a run.
	ID ULID

	// Name is a label used in logs and stats.
	Name string

	// Type selects the handler that ingests this source.
	Type SourceType

	// Channels holds raw definitions for static sources.
	Channels []StaticChannel

	// Path locates the channel list for text sources.
	Path string

	// Extension is the stream URL suffix for text sources (".ts", ".m3u8" or "").
	Extension string

	// Host is the panel base URL for xtream sources, without trailing slash.
	Host string

	// Username authenticates against the panel.
	Username string

	// Password authenticates against the panel.
	Password string
}

// Sanitize trims whitespace and normalizes the host.
func (s *Source) Sanitize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Path = strings.TrimSpace(s.Path)
	s.Host = strings.TrimSuffix(strings.TrimSpace(s.Host), "/")
	s.Username = strings.TrimSpace(s.Username)
	s.Password = strings.TrimSpace(s.Password)
}

// Validate checks that the source carries the fields its type requires.
func (s *Source) Validate() error {
	if !s.Type.Valid() {
		return ErrInvalidSourceType
	}
	switch s.Type {
	case SourceTypeText:
		if s.Path == "" {
			return ErrPathRequired
		}
	case SourceTypeXtream:
		if s.Host == "" {
			return ErrHostRequired
		}
		if s.Username == "" || s.Password == "" {
			return ErrCredentialsRequired
		}
	}
	return nil
}
