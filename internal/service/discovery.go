package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pcormier/wax/internal/domain"
	"github.com/pcormier/wax/internal/store"
)

// Discovery listings are curated server-side and change slowly; a cached
// copy stays valid for hours.
const (
	DiscoveryCacheTTL = 6 * time.Hour

	keyAlbumsToDiscover = "albums-to-discover"
	keyTracksToDiscover = "tracks-to-discover"
)

// DiscoveryService serves the digging listings, preferring the local cache
// within its TTL. Storage failures degrade to a plain fetch.
type DiscoveryService struct {
	repo   domain.DiscoveryRepository
	store  *store.Store
	logger *slog.Logger
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(repo domain.DiscoveryRepository, st *store.Store, logger *slog.Logger) *DiscoveryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DiscoveryService{repo: repo, store: st, logger: logger}
}

// Albums returns the curated album listing, from cache when fresh
func (s *DiscoveryService) Albums(ctx context.Context) ([]domain.DiscoveryAlbum, error) {
	var cached []domain.DiscoveryAlbum
	if s.store.GetListing(keyAlbumsToDiscover, DiscoveryCacheTTL, &cached) {
		s.logger.Debug("discovery albums served from cache", "count", len(cached))
		return cached, nil
	}

	albums, err := s.repo.AlbumsToDiscover(ctx)
	if err != nil {
		return nil, err
	}
	s.store.PutListing(keyAlbumsToDiscover, albums)
	return albums, nil
}

// Tracks returns the curated track listing, from cache when fresh
func (s *DiscoveryService) Tracks(ctx context.Context) ([]domain.DiscoveryTrack, error) {
	var cached []domain.DiscoveryTrack
	if s.store.GetListing(keyTracksToDiscover, DiscoveryCacheTTL, &cached) {
		s.logger.Debug("discovery tracks served from cache", "count", len(cached))
		return cached, nil
	}

	tracks, err := s.repo.TracksToDiscover(ctx)
	if err != nil {
		return nil, err
	}
	s.store.PutListing(keyTracksToDiscover, tracks)
	return tracks, nil
}

// RefreshAlbums invalidates the album listing; the next load refetches
func (s *DiscoveryService) RefreshAlbums() {
	s.store.DeleteListing(keyAlbumsToDiscover)
}

// RefreshTracks invalidates the track listing; the next load refetches
func (s *DiscoveryService) RefreshTracks() {
	s.store.DeleteListing(keyTracksToDiscover)
}

// FilterAlbums narrows a loaded listing by a free-text query against
// artist and album name. An empty query returns the input unchanged.
func (s *DiscoveryService) FilterAlbums(albums []domain.DiscoveryAlbum, query string) []domain.DiscoveryAlbum {
	if query == "" {
		return albums
	}
	out := make([]domain.DiscoveryAlbum, 0, len(albums))
	for _, a := range albums {
		if fuzzy.MatchNormalizedFold(query, a.Artist+" "+a.Name) {
			out = append(out, a)
		}
	}
	return out
}

// FilterTracks narrows a loaded listing by a free-text query against
// artist and title. An empty query returns the input unchanged.
func (s *DiscoveryService) FilterTracks(tracks []domain.DiscoveryTrack, query string) []domain.DiscoveryTrack {
	if query == "" {
		return tracks
	}
	out := make([]domain.DiscoveryTrack, 0, len(tracks))
	for _, t := range tracks {
		if fuzzy.MatchNormalizedFold(query, t.Artist+" "+t.Title) {
			out = append(out, t)
		}
	}
	return out
}
