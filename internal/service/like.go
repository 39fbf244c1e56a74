package service

import (
	"context"
	"log/slog"

	"github.com/pcormier/wax/internal/domain"
	"github.com/pcormier/wax/internal/store"
)

// playlists is the fixed set of curated playlists the backend accepts
var playlists = []string{
	"Afrobeat & Highlife",
	"Beats",
	"Bossa Nova",
	"Brazilian Music",
	"Disco Dancefloor",
	"DNB",
	"Downtempo Trip-hop",
	"Funk & Rock",
	"Hip-hop",
	"House Chill",
	"House Dancefloor",
	"Jazz Classic",
	"Jazz Funk",
	"Latin Music",
	"Morning Chill",
	"Neo Soul",
	"Reggae",
	"RNB Mood",
	"Soul Oldies",
}

// LikeService adds tracks to remote playlists and remembers successful
// likes locally so the UI can mark already-liked tracks.
type LikeService struct {
	repo   domain.PlaylistRepository
	store  *store.Store
	logger *slog.Logger
}

// NewLikeService creates a new like service
func NewLikeService(repo domain.PlaylistRepository, st *store.Store, logger *slog.Logger) *LikeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LikeService{repo: repo, store: st, logger: logger}
}

// Playlists returns the selectable playlist names
func (s *LikeService) Playlists() []string {
	out := make([]string, len(playlists))
	copy(out, playlists)
	return out
}

// Like adds a track to the named playlist. A success is recorded in the
// local liked list; the normalized backend result is returned either way.
func (s *LikeService) Like(ctx context.Context, track domain.Track, playlist string) (domain.APIResult, error) {
	result, err := s.repo.LikeTrack(ctx, track.Title, track.Artist, playlist, track.SpotifyID)
	if err != nil {
		return domain.APIResult{}, err
	}

	if result.OK() {
		s.store.AddLikedTrack(domain.LikedTrack{
			Title:    track.Title,
			Artist:   track.Artist,
			Playlist: playlist,
		})
	}
	return result, nil
}

// IsLiked reports whether a track was liked before on this device
func (s *LikeService) IsLiked(title, artist string) bool {
	return s.store.IsLiked(title, artist)
}
