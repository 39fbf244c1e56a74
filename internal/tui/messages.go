package tui

import (
	"github.com/pcormier/wax/internal/domain"
	"github.com/pcormier/wax/internal/router"
)

// Message types for the TUI

// ErrMsg represents a recoverable error surfaced as a notification
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SearchResultsMsg signals that track search results are ready
type SearchResultsMsg struct {
	Results []domain.SearchResult
	Query   string
}

// AlbumResultsMsg signals that album search results are ready
type AlbumResultsMsg struct {
	Results []domain.AlbumResult
	Query   string
}

// TrackStartedMsg signals that a track was resolved and handed to the session
type TrackStartedMsg struct {
	Track domain.Track
}

// AlbumLoadedMsg signals that an album's tracklist is ready
type AlbumLoadedMsg struct {
	AlbumID int
	Info    domain.AlbumInfo
	Tracks  []domain.AlbumTrack
}

// DiscoveryAlbumsMsg carries the curated album listing
type DiscoveryAlbumsMsg struct {
	Albums []domain.DiscoveryAlbum
}

// DiscoveryTracksMsg carries the curated track listing
type DiscoveryTracksMsg struct {
	Tracks []domain.DiscoveryTrack
}

// HiddenMsg signals the outcome of a hide action
type HiddenMsg struct {
	Key string
	Err error
}

// LikeResultMsg carries the normalized outcome of a like call
type LikeResultMsg struct {
	Track  domain.Track
	Result domain.APIResult
	Err    error
}

// RateResultMsg carries the normalized outcome of a rate call
type RateResultMsg struct {
	Result domain.APIResult
	Err    error
}

// DownloadDoneMsg signals a finished track download
type DownloadDoneMsg struct {
	Path string
	Err  error
}

// SharedLinkCopiedMsg signals that a share link landed on the clipboard
type SharedLinkCopiedMsg struct {
	URL string
	Err error
}

// RouteMsg applies a parsed route to the view state
type RouteMsg struct {
	Route router.Route
}

// SessionChangedMsg signals that playback state changed and the player
// bar should re-render
type SessionChangedMsg struct{}

// SharedTrackResolvedMsg signals that an inbound share ref was resolved
// and loaded paused
type SharedTrackResolvedMsg struct {
	Track domain.Track
}

// StatusClearMsg clears the transient status line
type StatusClearMsg struct{ seq int }
