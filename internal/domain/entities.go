package domain

import (
	"fmt"
	"time"
)

// TrackOrigin records where a track was loaded from. The router uses it to
// decide whether the current route should mirror the playing track.
type TrackOrigin int

const (
	OriginUnknown TrackOrigin = iota
	OriginSearch
	OriginAlbum
	OriginShared
)

// Track is a playable track with a just-in-time resolved stream URL.
// Tracks are replaced wholesale when a new one is loaded, never mutated.
type Track struct {
	ID        string      // Backend track identifier (numeric for catalog tracks)
	Title     string      // Display title
	Artist    string      // Display artist
	Album     string      // Album name, may be empty for standalone tracks
	CoverURL  string      // Cover art URL, may be empty
	StreamURL string      // Time-limited stream URL
	SpotifyID string      // External playlist-service identifier, may be empty
	ShareHash string      // Backend share hash used for deep links, may be empty
	Origin    TrackOrigin // Where the track came from
}

// DisplayName returns "Artist - Title" for the player bar and file naming.
func (t Track) DisplayName() string {
	if t.Artist == "" {
		return t.Title
	}
	return fmt.Sprintf("%s - %s", t.Artist, t.Title)
}

// AlbumTrack is one entry of an album tracklist.
type AlbumTrack struct {
	ID     int    `json:"track-id"`
	Title  string `json:"track"`
	Artist string `json:"artist"`
	Number int    `json:"track-number"`
}

// AlbumInfo is the metadata half of an album context.
type AlbumInfo struct {
	Name      string
	Artist    string
	CoverURL  string
	CatalogID string // Optional hash identifier for share links
}

// SearchResult is a track row returned by catalog search.
type SearchResult struct {
	Title    string
	Artist   string
	Album    string
	TrackID  string
	CoverURL string
}

// AlbumResult is an album row returned by album search.
type AlbumResult struct {
	Name     string
	Artist   string
	AlbumID  int
	CoverURL string
}

// DiscoveryAlbum is a curated album surfaced for digging.
type DiscoveryAlbum struct {
	Name     string
	Artist   string
	CoverURL string
	HashID   string // Optional hash-identified discovery album
}

// Key returns the stable identity used for hide tracking.
func (a DiscoveryAlbum) Key() string {
	return a.Artist + "||" + a.Name
}

// DiscoveryTrack is a curated track surfaced for digging.
type DiscoveryTrack struct {
	Title     string
	Artist    string
	Curator   string
	SpotifyID string
}

// Key returns the stable identity used for hide tracking.
func (t DiscoveryTrack) Key() string {
	return t.Artist + "||" + t.Title
}

// LikedTrack records a track added to a remote playlist.
type LikedTrack struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Playlist string `json:"playlist"`
}

// HiddenEntry is a persisted hidden item with its expiry.
type HiddenEntry struct {
	Key       string    `json:"key"`
	HiddenAt  time.Time `json:"hiddenAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the entry is past its expiry at the given instant.
func (e HiddenEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.After(now)
}

// APIStatus is the normalized outcome of a write-style webhook call.
type APIStatus int

const (
	StatusError APIStatus = iota
	StatusSuccess
)

// String returns the wire-level status label.
func (s APIStatus) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return "error"
}

// APIResult pairs a normalized status with a human-readable message.
// It is the only shape write responses are exposed as; the permissive
// decoding of legacy webhook payloads happens in the api package.
type APIResult struct {
	Status  APIStatus
	Message string
}

// OK reports whether the call succeeded.
func (r APIResult) OK() bool { return r.Status == StatusSuccess }
