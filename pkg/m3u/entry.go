// Package m3u provides streaming M3U playlist writing and parsing.
// It supports extended M3U (M3U8) with EXTINF metadata and transparently
// decompresses gzip, bzip2, and xz playlists on the read side.
package m3u

// Entry represents a single channel entry in an M3U playlist.
type Entry struct {
	// Duration is the track duration in seconds (-1 for live streams).
	Duration int

	// TvgID is the EPG channel identifier.
	TvgID string

	// TvgName is the display name from the tvg-name attribute.
	TvgName string

	// TvgLogo is the URL to the channel logo.
	TvgLogo string

	// GroupTitle is the category/group from the group-title attribute.
	GroupTitle string

	// Title is the display title from the EXTINF line.
	Title string

	// URL is the stream URL.
	URL string

	// Extra contains any additional attributes not explicitly parsed.
	Extra map[string]string
}
