package service

import (
	"context"
	"log/slog"
	"sort"
	"strconv"

	"github.com/pcormier/wax/internal/domain"
	"github.com/pcormier/wax/internal/session"
)

// AlbumLoader fetches an album tracklist and installs it as the playback
// session's album context.
type AlbumLoader struct {
	catalog domain.CatalogRepository
	session *session.Session
	logger  *slog.Logger
}

// NewAlbumLoader creates a new album loader
func NewAlbumLoader(catalog domain.CatalogRepository, sess *session.Session, logger *slog.Logger) *AlbumLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &AlbumLoader{catalog: catalog, session: sess, logger: logger}
}

// Load fetches the album's tracks, sorts them by track number, and sets
// the album context. With loadFirst the first track is resolved and loaded
// paused so the player bar shows the album without auto-playing.
func (l *AlbumLoader) Load(ctx context.Context, albumID int, info domain.AlbumInfo, loadFirst bool) ([]domain.AlbumTrack, error) {
	tracks, err := l.catalog.AlbumTracks(ctx, albumID)
	if err != nil {
		l.logger.Error("failed to load album tracks", "albumID", albumID, "error", err)
		return nil, err
	}

	sort.SliceStable(tracks, func(i, j int) bool {
		return tracks[i].Number < tracks[j].Number
	})

	l.session.SetAlbumContext(tracks, info)

	if loadFirst && len(tracks) > 0 {
		first := tracks[0]
		gen := l.session.NewGeneration()
		resolved, err := l.catalog.ResolveStream(ctx, strconv.Itoa(first.ID), first.Title, first.Artist)
		if err != nil {
			// The album view still works without a preloaded first track
			l.logger.Error("failed to preload first album track", "albumID", albumID, "error", err)
			return tracks, nil
		}
		track := *resolved
		track.Origin = domain.OriginAlbum
		if track.Album == "" {
			track.Album = info.Name
		}
		if track.CoverURL == "" {
			track.CoverURL = info.CoverURL
		}
		l.session.LoadTrackAt(gen, track)
	}

	return tracks, nil
}
