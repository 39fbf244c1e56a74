package service

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/pcormier/wax/internal/domain"
	"github.com/pcormier/wax/internal/session"
)

// PlayOptions customizes a user-triggered play request
type PlayOptions struct {
	ClearAlbum bool               // Drop album context for standalone tracks
	AlbumName  string             // Override the resolved album name
	CoverURL   string             // Override the resolved cover
	SpotifyID  string             // Carried through for the like modal
	Origin     domain.TrackOrigin // Where the request came from
	Paused     bool               // Load without starting playback
}

// TrackPlayer is the user-facing play wrapper: it resolves a stream and
// hands the track to the session. When resolution fails the session is
// left untouched so the player keeps its prior state.
type TrackPlayer struct {
	catalog domain.CatalogRepository
	session *session.Session
	logger  *slog.Logger
}

// NewTrackPlayer creates a new track player
func NewTrackPlayer(catalog domain.CatalogRepository, sess *session.Session, logger *slog.Logger) *TrackPlayer {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrackPlayer{catalog: catalog, session: sess, logger: logger}
}

// Play resolves a stream for the track and starts (or loads) it. The
// generation token is claimed before the network call so a second request
// issued meanwhile invalidates this one.
func (p *TrackPlayer) Play(ctx context.Context, trackID, title, artist string, opts PlayOptions) (*domain.Track, error) {
	gen := p.session.NewGeneration()

	if opts.ClearAlbum {
		p.session.ClearAlbumContext()
	}

	resolved, err := p.catalog.ResolveStream(ctx, trackID, title, artist)
	if err != nil {
		p.logger.Error("failed to resolve stream", "trackID", trackID, "title", title, "error", err)
		return nil, err
	}

	track := *resolved
	track.Origin = opts.Origin
	if opts.AlbumName != "" {
		track.Album = opts.AlbumName
	}
	if opts.CoverURL != "" {
		track.CoverURL = opts.CoverURL
	}
	if opts.SpotifyID != "" {
		track.SpotifyID = opts.SpotifyID
	}

	if opts.Paused {
		p.session.LoadTrackAt(gen, track)
	} else {
		p.session.PlayAt(gen, track)
	}
	return &track, nil
}

var numericRef = regexp.MustCompile(`^\d+$`)

// PlayShared resolves an inbound share ref (hash, slug, or numeric id)
// and loads the track paused, matching how shared links land in the
// player without auto-playing.
func (p *TrackPlayer) PlayShared(ctx context.Context, ref string) (*domain.Track, error) {
	gen := p.session.NewGeneration()

	var (
		resolved *domain.Track
		err      error
	)
	if numericRef.MatchString(ref) {
		resolved, err = p.catalog.ResolveStream(ctx, ref, "", "")
	} else {
		resolved, err = p.catalog.ResolveStreamByHash(ctx, ref)
	}
	if err != nil {
		p.logger.Error("failed to resolve shared track", "ref", ref, "error", err)
		return nil, err
	}

	track := *resolved
	track.Origin = domain.OriginShared

	p.session.ClearAlbumContext()
	p.session.LoadTrackAt(gen, track)
	return &track, nil
}
