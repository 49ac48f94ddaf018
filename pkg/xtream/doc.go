// Package xtream implements a client for the Xtream-Codes panel API.
//
// The client talks to the player_api.php endpoint of an IPTV panel and
// exposes the account check, live category listing, and live stream
// listing used to build playlists. Panels are wildly inconsistent about
// JSON number encoding, so numeric fields decode from both numbers and
// strings (see FlexInt and FlexString).
//
// The client takes a standard *http.Client, so retry and circuit breaker
// behavior can be injected by wrapping the transport.
package xtream
