package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pcormier/wax/internal/domain"
)

// flexID accepts a JSON string or number and exposes it as a string.
// Track ids arrive as numbers from some webhook revisions and strings
// from others.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexID(n.String())
		return nil
	}
	return fmt.Errorf("id is neither string nor number: %s", string(data))
}

// searchResultDTO is a /search row
type searchResultDTO struct {
	Track   string `json:"track"`
	Artist  string `json:"artist"`
	Album   string `json:"album"`
	TrackID flexID `json:"track-id"`
	Cover   string `json:"cover"`
}

// albumResultDTO is a /search-album row
type albumResultDTO struct {
	Album   string `json:"album"`
	Artist  string `json:"artist"`
	AlbumID int    `json:"album-id"`
	Cover   string `json:"cover"`
}

// streamDTO is the /stream response
type streamDTO struct {
	StreamURL string `json:"stream_url"`
	TrackID   flexID `json:"track_id"`
	HashURL   string `json:"hash_url"`
	Track     string `json:"track"`
	Artist    string `json:"artist"`
	Album     string `json:"album"`
	Cover     string `json:"cover"`
	SpotifyID string `json:"spotify-id"`
}

// discoveryAlbumDTO is an /albums-to-discover row
type discoveryAlbumDTO struct {
	Album  string `json:"album"`
	Artist string `json:"artist"`
	Cover  string `json:"cover_url"`
	ID     string `json:"id"` // hash-identified discovery album variant
}

// discoveryTrackDTO is a /tracks-to-discover row
type discoveryTrackDTO struct {
	Track     string `json:"track"`
	Artist    string `json:"artist"`
	Curator   string `json:"curator"`
	SpotifyID string `json:"spotify-id"`
}

// decodeList parses a webhook list payload. Revisions of the backend have
// returned bare arrays, a {"results": [...]} envelope, and single bare
// objects; all are accepted.
func decodeList[T any](body []byte, dest *[]T) error {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		*dest = nil
		return nil
	}

	if err := json.Unmarshal(body, dest); err == nil {
		return nil
	}

	var envelope struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Results != nil {
		*dest = envelope.Results
		return nil
	}

	var single T
	if err := json.Unmarshal(body, &single); err == nil {
		*dest = []T{single}
		return nil
	}

	return fmt.Errorf("unrecognized list payload")
}

// decodeStream parses a /stream response into a Track
func decodeStream(body []byte) (*domain.Track, error) {
	var rows []streamDTO
	if err := decodeList(body, &rows); err != nil || len(rows) == 0 {
		return nil, fmt.Errorf("failed to parse stream response")
	}
	dto := rows[0]
	if dto.StreamURL == "" {
		return nil, domain.ErrNoStream
	}
	return &domain.Track{
		ID:        string(dto.TrackID),
		Title:     dto.Track,
		Artist:    dto.Artist,
		Album:     dto.Album,
		CoverURL:  dto.Cover,
		StreamURL: dto.StreamURL,
		SpotifyID: dto.SpotifyID,
		ShareHash: hashFromURL(dto.HashURL),
	}, nil
}

// hashFromURL extracts the trailing hash segment from a hash_url value.
// The backend has returned both a bare hash and a full share URL.
func hashFromURL(hashURL string) string {
	if hashURL == "" {
		return ""
	}
	trimmed := strings.TrimRight(hashURL, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

func mapSearchResults(rows []searchResultDTO) []domain.SearchResult {
	out := make([]domain.SearchResult, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.SearchResult{
			Title:    r.Track,
			Artist:   r.Artist,
			Album:    r.Album,
			TrackID:  string(r.TrackID),
			CoverURL: r.Cover,
		})
	}
	return out
}

func mapAlbumResults(rows []albumResultDTO) []domain.AlbumResult {
	out := make([]domain.AlbumResult, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.AlbumResult{
			Name:     r.Album,
			Artist:   r.Artist,
			AlbumID:  r.AlbumID,
			CoverURL: r.Cover,
		})
	}
	return out
}

func mapDiscoveryAlbums(rows []discoveryAlbumDTO) []domain.DiscoveryAlbum {
	out := make([]domain.DiscoveryAlbum, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.DiscoveryAlbum{
			Name:     r.Album,
			Artist:   r.Artist,
			CoverURL: r.Cover,
			HashID:   r.ID,
		})
	}
	return out
}

func mapDiscoveryTracks(rows []discoveryTrackDTO) []domain.DiscoveryTrack {
	out := make([]domain.DiscoveryTrack, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.DiscoveryTrack{
			Title:     r.Track,
			Artist:    r.Artist,
			Curator:   r.Curator,
			SpotifyID: r.SpotifyID,
		})
	}
	return out
}
