// Package api is the HTTP client for the webhook-based streaming backend.
// Every call is JSON over HTTPS against a fixed endpoint path; heterogeneous
// response shapes are normalized here so the rest of the app only sees
// domain types.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pcormier/wax/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Wax/1.0"
)

// Client implements domain.CatalogRepository, domain.DiscoveryRepository,
// domain.PlaylistRepository, and domain.RatingRepository against the
// webhook backend.
type Client struct {
	baseURL    string
	sessionID  string // per-process id, lets the backend correlate requests
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new webhook API client
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		sessionID: uuid.NewString(),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// do performs a request and returns the raw body plus HTTP status code.
// Transport-level failures map to domain.ErrServerOffline; status handling
// is left to the caller because write-style webhooks report errors in the
// body of non-2xx responses.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Wax-Session", c.sessionID)

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "path", path, "error", err)
		return nil, 0, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// postJSON performs a POST and fails on non-2xx status
func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, status, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		c.logger.Error("api request error", "path", path, "status", status, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", status)
	}
	return body, nil
}

// getJSON performs a GET and fails on non-2xx status
func (c *Client) getJSON(ctx context.Context, path string) ([]byte, error) {
	body, status, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		c.logger.Error("api request error", "path", path, "status", status, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", status)
	}
	return body, nil
}

// === Catalog ===

// SearchTracks returns track rows matching the query
func (c *Client) SearchTracks(ctx context.Context, query string) ([]domain.SearchResult, error) {
	body, err := c.postJSON(ctx, "/search", map[string]string{"query": query})
	if err != nil {
		return nil, err
	}
	var rows []searchResultDTO
	if err := decodeList(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	return mapSearchResults(rows), nil
}

// SearchAlbums returns album rows matching the query
func (c *Client) SearchAlbums(ctx context.Context, query string) ([]domain.AlbumResult, error) {
	body, err := c.postJSON(ctx, "/search-album", map[string]string{"query": query})
	if err != nil {
		return nil, err
	}
	var rows []albumResultDTO
	if err := decodeList(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse album search response: %w", err)
	}
	return mapAlbumResults(rows), nil
}

// ResolveStream resolves a time-limited stream URL for a track id
func (c *Client) ResolveStream(ctx context.Context, trackID, title, artist string) (*domain.Track, error) {
	body, err := c.postJSON(ctx, "/stream", map[string]string{
		"trackId": trackID,
		"track":   title,
		"artist":  artist,
	})
	if err != nil {
		return nil, err
	}
	return decodeStream(body)
}

// ResolveStreamByHash resolves a shared-link hash to a playable track
func (c *Client) ResolveStreamByHash(ctx context.Context, hash string) (*domain.Track, error) {
	body, err := c.postJSON(ctx, "/stream", map[string]string{"hash": hash})
	if err != nil {
		return nil, err
	}
	return decodeStream(body)
}

// AlbumTracks returns the tracklist for an album id
func (c *Client) AlbumTracks(ctx context.Context, albumID int) ([]domain.AlbumTrack, error) {
	body, err := c.postJSON(ctx, "/stream-album", map[string]int{"albumId": albumID})
	if err != nil {
		return nil, err
	}
	var rows []domain.AlbumTrack
	if err := decodeList(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse album tracks response: %w", err)
	}
	return rows, nil
}

// Download fetches the raw audio bytes for a track
func (c *Client) Download(ctx context.Context, trackID, title, artist string) ([]byte, error) {
	return c.postJSON(ctx, "/download", map[string]string{
		"trackId": trackID,
		"track":   title,
		"artist":  artist,
	})
}

// === Discovery ===

// AlbumsToDiscover returns the curated album listing
func (c *Client) AlbumsToDiscover(ctx context.Context) ([]domain.DiscoveryAlbum, error) {
	body, err := c.getJSON(ctx, "/albums-to-discover")
	if err != nil {
		return nil, err
	}
	var rows []discoveryAlbumDTO
	if err := decodeList(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse discovery albums response: %w", err)
	}
	return mapDiscoveryAlbums(rows), nil
}

// TracksToDiscover returns the curated track listing
func (c *Client) TracksToDiscover(ctx context.Context) ([]domain.DiscoveryTrack, error) {
	body, err := c.getJSON(ctx, "/tracks-to-discover")
	if err != nil {
		return nil, err
	}
	var rows []discoveryTrackDTO
	if err := decodeList(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse discovery tracks response: %w", err)
	}
	return mapDiscoveryTracks(rows), nil
}

// HideAlbum suppresses an album from the curated listing
func (c *Client) HideAlbum(ctx context.Context, album domain.DiscoveryAlbum) error {
	_, err := c.postJSON(ctx, "/hide-album", map[string]string{
		"album":  album.Name,
		"artist": album.Artist,
	})
	return err
}

// HideTrack suppresses a track from the curated listing
func (c *Client) HideTrack(ctx context.Context, track domain.DiscoveryTrack) error {
	_, err := c.postJSON(ctx, "/hide-track", map[string]string{
		"track":      track.Title,
		"artist":     track.Artist,
		"spotify-id": track.SpotifyID,
	})
	return err
}

// === Playlists & ratings ===

// LikeTrack adds a track to the named playlist. The response shape is
// loosely typed on the backend side, so the raw body goes through the
// permissive normalizer regardless of HTTP status.
func (c *Client) LikeTrack(ctx context.Context, title, artist, playlist, spotifyID string) (domain.APIResult, error) {
	body, status, err := c.do(ctx, http.MethodPost, "/like-track", map[string]string{
		"track":      title,
		"artist":     artist,
		"playlist":   playlist,
		"spotify-id": spotifyID,
	})
	if err != nil {
		return domain.APIResult{}, err
	}
	return ParseStatus(status >= 200 && status < 300, body, ParseOptions{
		SuccessMessage: "Track added to playlist",
		ErrorMessage:   "Failed to add track to playlist",
	}), nil
}

// RateAlbum records a rating for an album
func (c *Client) RateAlbum(ctx context.Context, album, artist string, rating int) (domain.APIResult, error) {
	body, status, err := c.do(ctx, http.MethodPost, "/rate-album", map[string]any{
		"album":  album,
		"artist": artist,
		"rating": rating,
	})
	if err != nil {
		return domain.APIResult{}, err
	}
	return ParseStatus(status >= 200 && status < 300, body, ParseOptions{
		SuccessMessage: "Rating saved",
		ErrorMessage:   "Failed to save rating",
	}), nil
}
