package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrTrackNotFound indicates the requested track does not exist
	ErrTrackNotFound = errors.New("track not found")

	// ErrAlbumNotFound indicates the requested album does not exist
	ErrAlbumNotFound = errors.New("album not found")

	// ErrServerOffline indicates the streaming backend is unreachable
	ErrServerOffline = errors.New("streaming backend is unreachable")

	// ErrNotAuthenticated indicates the access code gate has not been passed
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoStream indicates the backend returned no usable stream URL
	ErrNoStream = errors.New("no stream URL in response")
)
