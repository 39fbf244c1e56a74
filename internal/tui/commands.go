package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pcormier/wax/internal/domain"
	"github.com/pcormier/wax/internal/router"
	"github.com/pcormier/wax/internal/service"
)

const requestTimeout = 30 * time.Second

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// waitForSession re-arms the playback state change listener
func (m *Model) waitForSession() tea.Cmd {
	changed := m.sess.Changed()
	return func() tea.Msg {
		<-changed
		return SessionChangedMsg{}
	}
}

// searchTracksCmd runs a catalog track search
func (m *Model) searchTracksCmd(query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		results, err := m.searchSvc.Tracks(ctx, query)
		if err != nil {
			return ErrMsg{Err: err, Context: "Search failed"}
		}
		return SearchResultsMsg{Results: results, Query: query}
	}
}

// searchAlbumsCmd runs a catalog album search
func (m *Model) searchAlbumsCmd(query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		results, err := m.searchSvc.Albums(ctx, query)
		if err != nil {
			return ErrMsg{Err: err, Context: "Album search failed"}
		}
		return AlbumResultsMsg{Results: results, Query: query}
	}
}

// playTrackCmd resolves and plays a track through the session
func (m *Model) playTrackCmd(trackID, title, artist string, opts service.PlayOptions) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		track, err := m.trackPlayer.Play(ctx, trackID, title, artist, opts)
		if err != nil {
			return ErrMsg{Err: err, Context: "Failed to load track. Please try again"}
		}
		return TrackStartedMsg{Track: *track}
	}
}

// loadAlbumCmd fetches an album tracklist and installs the album context
func (m *Model) loadAlbumCmd(albumID int, info domain.AlbumInfo) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		tracks, err := m.albumLoader.Load(ctx, albumID, info, true)
		if err != nil {
			return ErrMsg{Err: err, Context: "Failed to load album tracks. Please try again"}
		}
		return AlbumLoadedMsg{AlbumID: albumID, Info: info, Tracks: tracks}
	}
}

// discoveryAlbumsCmd loads the curated album listing (cache-first)
func (m *Model) discoveryAlbumsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		albums, err := m.discovery.Albums(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "Failed to load albums to discover"}
		}
		return DiscoveryAlbumsMsg{Albums: albums}
	}
}

// discoveryTracksCmd loads the curated track listing (cache-first)
func (m *Model) discoveryTracksCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		tracks, err := m.discovery.Tracks(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "Failed to load tracks to discover"}
		}
		return DiscoveryTracksMsg{Tracks: tracks}
	}
}

// hideAlbumCmd hides a discovery album (optimistic, already marked)
func (m *Model) hideAlbumCmd(album domain.DiscoveryAlbum) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		err := m.hideAlbums.Hide(ctx, album)
		return HiddenMsg{Key: album.Key(), Err: err}
	}
}

// hideTrackCmd hides a discovery track (optimistic, already marked)
func (m *Model) hideTrackCmd(track domain.DiscoveryTrack) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		err := m.hideTracks.Hide(ctx, track)
		return HiddenMsg{Key: track.Key(), Err: err}
	}
}

// likeTrackCmd adds a track to a playlist
func (m *Model) likeTrackCmd(track domain.Track, playlist string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		result, err := m.likes.Like(ctx, track, playlist)
		return LikeResultMsg{Track: track, Result: result, Err: err}
	}
}

// rateAlbumCmd submits an album rating
func (m *Model) rateAlbumCmd(album, artist string, rating int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		result, err := m.rates.Rate(ctx, album, artist, rating)
		return RateResultMsg{Result: result, Err: err}
	}
}

// downloadTrackCmd saves the current track's audio locally
func (m *Model) downloadTrackCmd(track domain.Track) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		path, err := m.downloads.Download(ctx, track)
		return DownloadDoneMsg{Path: path, Err: err}
	}
}

// resolveSharedCmd resolves an inbound share ref and loads it paused
func (m *Model) resolveSharedCmd(ref string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		track, err := m.trackPlayer.PlayShared(ctx, ref)
		if err != nil {
			return ErrMsg{Err: err, Context: "Failed to resolve shared track"}
		}
		return SharedTrackResolvedMsg{Track: *track}
	}
}

// copyShareLinkCmd puts a share URL on the system clipboard
func (m *Model) copyShareLinkCmd(route router.Route) tea.Cmd {
	return func() tea.Msg {
		url := router.ShareURL(m.shareBase, route)
		err := clipboard.WriteAll(url)
		return SharedLinkCopiedMsg{URL: url, Err: err}
	}
}

// clearStatusCmd clears the status line after a delay unless a newer
// status replaced it
func (m *Model) clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return StatusClearMsg{seq: seq}
	})
}

// trackIDString formats an album track id for stream resolution
func trackIDString(id int) string {
	return strconv.Itoa(id)
}
