package domain

import (
	"context"
)

// CatalogRepository provides search and stream resolution against the
// remote catalog.
type CatalogRepository interface {
	// SearchTracks returns track rows matching the query
	SearchTracks(ctx context.Context, query string) ([]SearchResult, error)

	// SearchAlbums returns album rows matching the query
	SearchAlbums(ctx context.Context, query string) ([]AlbumResult, error)

	// ResolveStream resolves a time-limited stream URL for a track id.
	// Title and artist ride along so the backend can fall back to a
	// metadata lookup when the id alone is ambiguous.
	ResolveStream(ctx context.Context, trackID, title, artist string) (*Track, error)

	// ResolveStreamByHash resolves a shared-link hash to a playable track
	ResolveStreamByHash(ctx context.Context, hash string) (*Track, error)

	// AlbumTracks returns the tracklist for an album id
	AlbumTracks(ctx context.Context, albumID int) ([]AlbumTrack, error)

	// Download fetches the raw audio bytes for a track
	Download(ctx context.Context, trackID, title, artist string) ([]byte, error)
}

// DiscoveryRepository provides the curated digging listings and the hide
// operations that suppress entries from them.
type DiscoveryRepository interface {
	// AlbumsToDiscover returns the curated album listing
	AlbumsToDiscover(ctx context.Context) ([]DiscoveryAlbum, error)

	// TracksToDiscover returns the curated track listing
	TracksToDiscover(ctx context.Context) ([]DiscoveryTrack, error)

	// HideAlbum suppresses an album from the curated listing
	HideAlbum(ctx context.Context, album DiscoveryAlbum) error

	// HideTrack suppresses a track from the curated listing
	HideTrack(ctx context.Context, track DiscoveryTrack) error
}

// PlaylistRepository adds tracks to remote playlists.
type PlaylistRepository interface {
	// LikeTrack adds a track to the named playlist
	LikeTrack(ctx context.Context, title, artist, playlist, spotifyID string) (APIResult, error)
}

// RatingRepository persists album ratings.
type RatingRepository interface {
	// RateAlbum records a rating for an album
	RateAlbum(ctx context.Context, album, artist string, rating int) (APIResult, error)
}
