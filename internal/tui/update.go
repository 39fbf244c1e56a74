package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pcormier/wax/internal/domain"
	"github.com/pcormier/wax/internal/router"
	"github.com/pcormier/wax/internal/service"
)

// handleViewKey dispatches list navigation and per-view actions
func (m *Model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.route.Kind {
	case router.KindHome:
		return m.handleHomeKey(msg)
	case router.KindDigging:
		return m.handleDiggingKey(msg)
	case router.KindAlbum:
		return m.handleAlbumKey(msg)
	}
	return m, nil
}

func (m *Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	total := len(m.results) + len(m.albumResults)

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.resultCursor > 0 {
			m.resultCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.resultCursor < total-1 {
			m.resultCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if total == 0 {
			return m, nil
		}
		if m.resultCursor < len(m.results) {
			r := m.results[m.resultCursor]
			m.loading++
			return m, m.playTrackCmd(r.TrackID, r.Title, r.Artist, service.PlayOptions{
				ClearAlbum: true,
				AlbumName:  r.Album,
				CoverURL:   r.CoverURL,
				Origin:     domain.OriginSearch,
			})
		}
		a := m.albumResults[m.resultCursor-len(m.results)]
		m.albumInfos[a.AlbumID] = domain.AlbumInfo{Name: a.Name, Artist: a.Artist, CoverURL: a.CoverURL}
		return m, m.applyRoute(m.nav.Push(router.Album(a.AlbumID)))
	}
	return m, nil
}

func (m *Model) handleDiggingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleCount()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.diggingCursor > 0 {
			m.diggingCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.diggingCursor < visible-1 {
			m.diggingCursor++
		}

	case key.Matches(msg, m.keys.NextTab):
		next := router.TabAlbums
		if m.route.Tab == router.TabAlbums {
			next = router.TabTracks
		}
		m.filterInput.SetValue("")
		return m, m.applyRoute(m.nav.Push(router.Digging(next, 1)))

	case key.Matches(msg, m.keys.PrevPage):
		if m.route.Page > 1 {
			return m, m.applyRoute(m.nav.Push(router.Digging(m.route.Tab, m.route.Page-1)))
		}

	case key.Matches(msg, m.keys.NextPage):
		if m.route.Page < m.totalPages() {
			return m, m.applyRoute(m.nav.Push(router.Digging(m.route.Tab, m.route.Page+1)))
		}

	case key.Matches(msg, m.keys.Filter):
		m.filterFocus = true
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		m.discLoaded[m.route.Tab] = false
		m.loading++
		if m.route.Tab == router.TabAlbums {
			m.discovery.RefreshAlbums()
			return m, m.discoveryAlbumsCmd()
		}
		m.discovery.RefreshTracks()
		return m, m.discoveryTracksCmd()

	case key.Matches(msg, m.keys.Hide):
		if m.route.Tab == router.TabAlbums {
			if album, ok := m.selectedDiscAlbum(); ok {
				return m, m.hideAlbumCmd(album)
			}
			return m, nil
		}
		if track, ok := m.selectedDiscTrack(); ok {
			return m, m.hideTrackCmd(track)
		}

	case key.Matches(msg, m.keys.Enter):
		if m.route.Tab == router.TabAlbums {
			if album, ok := m.selectedDiscAlbum(); ok {
				// Find the album through catalog search; discovery
				// listings carry no catalog ids.
				m.searchInput.SetValue(album.Artist + " " + album.Name)
				m.route = m.nav.Push(router.Home())
				m.resultCursor = 0
				m.loading += 2
				query := m.searchInput.Value()
				return m, tea.Batch(m.searchTracksCmd(query), m.searchAlbumsCmd(query))
			}
			return m, nil
		}
		if track, ok := m.selectedDiscTrack(); ok {
			// Unlike search plays, digging plays keep the view put, so
			// the origin stays unknown and no route is mirrored.
			m.loading++
			return m, m.playTrackCmd("", track.Title, track.Artist, service.PlayOptions{
				ClearAlbum: true,
				SpotifyID:  track.SpotifyID,
			})
		}
	}
	return m, nil
}

func (m *Model) handleAlbumKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.albumCursor > 0 {
			m.albumCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.albumCursor < len(m.albumTracks)-1 {
			m.albumCursor++
		}
	case key.Matches(msg, m.keys.Rate):
		m.modal = modalRate
		m.rateValue = 3
	case key.Matches(msg, m.keys.Enter):
		if len(m.albumTracks) == 0 {
			return m, nil
		}
		at := m.albumTracks[m.albumCursor]
		m.loading++
		return m, m.playTrackCmd(trackIDString(at.ID), at.Title, at.Artist, service.PlayOptions{
			AlbumName: m.albumInfo.Name,
			CoverURL:  m.albumInfo.CoverURL,
			Origin:    domain.OriginAlbum,
		})
	}
	return m, nil
}

// handleModalKey owns all keys while an overlay is open
func (m *Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalLike:
		visible := m.visiblePlaylists()
		switch msg.String() {
		case "esc":
			m.modal = modalNone
		case "up", "ctrl+p":
			if m.likeCursor > 0 {
				m.likeCursor--
			}
		case "down", "ctrl+n":
			if m.likeCursor < len(visible)-1 {
				m.likeCursor++
			}
		case "enter":
			if len(visible) == 0 {
				return m, nil
			}
			playlist := visible[m.likeCursor]
			m.modal = modalNone
			m.loading++
			return m, m.likeTrackCmd(m.likeTrack, playlist)
		case "backspace":
			if m.likeFilter != "" {
				r := []rune(m.likeFilter)
				m.likeFilter = string(r[:len(r)-1])
				m.likeCursor = 0
			}
		default:
			// Type-ahead over the playlist names
			if msg.Type == tea.KeyRunes {
				m.likeFilter += string(msg.Runes)
				m.likeCursor = 0
			}
		}
		return m, nil

	case modalRate:
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.modal = modalNone
		case key.Matches(msg, m.keys.PrevPage), key.Matches(msg, m.keys.Down):
			if m.rateValue > 1 {
				m.rateValue--
			}
		case key.Matches(msg, m.keys.NextPage), key.Matches(msg, m.keys.Up):
			if m.rateValue < 5 {
				m.rateValue++
			}
		case key.Matches(msg, m.keys.Enter):
			m.modal = modalNone
			m.loading++
			return m, m.rateAlbumCmd(m.albumInfo.Name, m.albumInfo.Artist, m.rateValue)
		}
		return m, nil

	case modalOpenLink:
		switch msg.String() {
		case "esc":
			m.modal = modalNone
			m.linkInput.Blur()
			return m, nil
		case "enter":
			raw := strings.TrimSpace(m.linkInput.Value())
			m.modal = modalNone
			m.linkInput.Blur()
			if raw == "" {
				return m, nil
			}
			route := router.Parse(stripBase(raw, m.shareBase))
			return m, m.applyRoute(m.nav.Push(route))
		}
		var cmd tea.Cmd
		m.linkInput, cmd = m.linkInput.Update(msg)
		return m, cmd

	case modalAuth:
		switch msg.String() {
		case "esc":
			m.modal = modalNone
			m.authInput.Blur()
			return m, nil
		case "enter":
			code := m.authInput.Value()
			m.authInput.SetValue("")
			if !m.auth.Login(code) {
				return m, m.notify("Wrong access code", true)
			}
			m.modal = modalNone
			m.authInput.Blur()
			return m, tea.Batch(
				m.notify("Unlocked digging", false),
				m.applyRoute(m.nav.Push(router.Digging(router.TabTracks, 1))),
			)
		}
		var cmd tea.Cmd
		m.authInput, cmd = m.authInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// stripBase reduces a pasted URL to its route path. Accepts bare paths,
// links on the configured share host, and host-relative links.
func stripBase(raw, base string) string {
	if base != "" {
		raw = strings.TrimPrefix(raw, strings.TrimSuffix(base, "/"))
	}
	if i := strings.Index(raw, "://"); i >= 0 {
		rest := raw[i+3:]
		if j := strings.Index(rest, "/"); j >= 0 {
			raw = rest[j:]
		} else {
			raw = "/"
		}
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return raw
}
