package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pcormier/wax/internal/router"
	"github.com/pcormier/wax/internal/tui/styles"
)

// View implements tea.Model
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	if m.modal != modalNone {
		b.WriteString(m.modalView())
	} else {
		switch m.route.Kind {
		case router.KindDigging:
			b.WriteString(m.diggingView())
		case router.KindAlbum:
			b.WriteString(m.albumView())
		default:
			b.WriteString(m.homeView())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.playerBarView())
	return b.String()
}

func (m *Model) headerView() string {
	title := styles.TitleStyle.Render("wax")
	crumb := styles.DimStyle.Render(router.Path(m.route))
	header := title + "  " + crumb
	if m.loading > 0 {
		header += "  " + m.spinner.View()
	}
	return header
}

func (m *Model) homeView() string {
	var b strings.Builder
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	total := len(m.results) + len(m.albumResults)
	if total == 0 {
		if m.searchInput.Value() == "" {
			b.WriteString(styles.DimStyle.Render("Press / to search, g to go digging, o to open a link"))
		} else if m.loading == 0 {
			b.WriteString(styles.DimStyle.Render("No results"))
		}
		return b.String()
	}

	if len(m.results) > 0 {
		b.WriteString(styles.SubtitleStyle.Render("Tracks"))
		b.WriteString("\n")
		for i, r := range m.results {
			line := fmt.Sprintf("%s %s %s", r.Title, styles.DimStyle.Render("by"), r.Artist)
			if r.Album != "" {
				line += styles.DimStyle.Render(" · " + r.Album)
			}
			b.WriteString(m.listRow(line, i == m.resultCursor))
			b.WriteString("\n")
		}
	}
	if len(m.albumResults) > 0 {
		b.WriteString(styles.SubtitleStyle.Render("Albums"))
		b.WriteString("\n")
		for i, a := range m.albumResults {
			line := fmt.Sprintf("%s %s %s", a.Name, styles.DimStyle.Render("by"), a.Artist)
			b.WriteString(m.listRow(line, len(m.results)+i == m.resultCursor))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) diggingView() string {
	var b strings.Builder

	tracksTab := styles.TabInactiveStyle.Render("Tracks")
	albumsTab := styles.TabInactiveStyle.Render("Albums")
	if m.route.Tab == router.TabAlbums {
		albumsTab = styles.TabActiveStyle.Render("Albums")
	} else {
		tracksTab = styles.TabActiveStyle.Render("Tracks")
	}
	b.WriteString(tracksTab + "  " + albumsTab)

	if m.filterFocus || m.filterInput.Value() != "" {
		b.WriteString("   " + m.filterInput.View())
	}
	b.WriteString("\n\n")

	if m.route.Tab == router.TabAlbums {
		page := m.pageDiscAlbums()
		if len(page) == 0 {
			b.WriteString(styles.DimStyle.Render("Nothing to discover right now"))
		}
		for i, a := range page {
			line := fmt.Sprintf("%s %s %s", a.Name, styles.DimStyle.Render("by"), a.Artist)
			b.WriteString(m.listRow(line, i == m.diggingCursor))
			b.WriteString("\n")
		}
	} else {
		page := m.pageDiscTracks()
		if len(page) == 0 {
			b.WriteString(styles.DimStyle.Render("Nothing to discover right now"))
		}
		for i, t := range page {
			line := fmt.Sprintf("%s %s %s", t.Title, styles.DimStyle.Render("by"), t.Artist)
			if t.Curator != "" {
				line += styles.DimStyle.Render(" · via " + t.Curator)
			}
			b.WriteString(m.listRow(line, i == m.diggingCursor))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf(
		"page %d/%d · h/l pages · tab switch · f filter · x hide · R refresh",
		m.route.Page, m.totalPages())))
	return b.String()
}

func (m *Model) albumView() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(m.albumInfo.Name))
	if m.albumInfo.Artist != "" {
		b.WriteString(styles.SubtitleStyle.Render(" by " + m.albumInfo.Artist))
	}
	b.WriteString("\n\n")

	if len(m.albumTracks) == 0 {
		if m.loading == 0 {
			b.WriteString(styles.DimStyle.Render("No tracks"))
		}
		return b.String()
	}

	st := m.sess.Snapshot()
	for i, at := range m.albumTracks {
		marker := "  "
		if st.Track != nil && st.Track.ID == trackIDString(at.ID) {
			marker = styles.AccentStyle.Render(styles.PlayingChar) + " "
			if !st.Playing {
				marker = styles.AccentStyle.Render(styles.PausedChar) + " "
			}
		}
		line := fmt.Sprintf("%s%2d. %s", marker, at.Number, at.Title)
		b.WriteString(m.listRow(line, i == m.albumCursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("enter play · r rate album · y share"))
	return b.String()
}

// listRow renders one selectable list line
func (m *Model) listRow(line string, selected bool) string {
	if selected {
		return styles.SelectedStyle.Render(line)
	}
	return " " + line
}

func (m *Model) playerBarView() string {
	st := m.sess.Snapshot()
	width := m.width
	if width <= 0 {
		width = 80
	}

	if st.Track == nil {
		return styles.PlayerBarStyle.Width(width).Render(
			styles.DimStyle.Render("Nothing playing"))
	}

	char := styles.PausedChar
	if st.Playing {
		char = styles.PlayingChar
	}
	name := st.Track.DisplayName()
	if m.likes.IsLiked(st.Track.Title, st.Track.Artist) {
		name += " " + styles.AccentStyle.Render(styles.LikedChar)
	}

	line := fmt.Sprintf("%s %s  %s/%s  vol %d%%",
		styles.AccentStyle.Render(char),
		name,
		formatClock(st.Position),
		formatClock(st.Duration),
		int(st.Volume*100),
	)
	if st.AlbumInfo != nil {
		line += styles.DimStyle.Render("  · " + st.AlbumInfo.Name)
	}
	return styles.PlayerBarStyle.Width(width).Render(line)
}

func (m *Model) statusView() string {
	if m.status == "" {
		return ""
	}
	if m.statusIsErr {
		return styles.ErrorStyle.Render(m.status)
	}
	return styles.SuccessStyle.Render(m.status)
}

func (m *Model) modalView() string {
	var content string
	switch m.modal {
	case modalLike:
		var b strings.Builder
		b.WriteString(styles.TitleStyle.Render("Add to playlist"))
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render(m.likeTrack.DisplayName()))
		b.WriteString("\n\n")
		if m.likeFilter != "" {
			b.WriteString(styles.DimStyle.Render("filter: ") + m.likeFilter)
			b.WriteString("\n")
		}
		visible := m.visiblePlaylists()
		if len(visible) == 0 {
			b.WriteString(styles.DimStyle.Render("No matching playlist"))
		}
		for i, name := range visible {
			b.WriteString(m.listRow(name, i == m.likeCursor))
			b.WriteString("\n")
		}
		content = b.String()

	case modalRate:
		stars := strings.Repeat("★", m.rateValue) + strings.Repeat("☆", 5-m.rateValue)
		content = styles.TitleStyle.Render("Rate "+m.albumInfo.Name) + "\n\n" +
			styles.AccentStyle.Render(stars) + "\n\n" +
			styles.DimStyle.Render("h/l adjust · enter save · esc cancel")

	case modalOpenLink:
		content = styles.TitleStyle.Render("Open link") + "\n\n" +
			m.linkInput.View() + "\n\n" +
			styles.DimStyle.Render("enter open · esc cancel")

	case modalAuth:
		content = styles.TitleStyle.Render("Digging is locked") + "\n\n" +
			m.authInput.View() + "\n\n" +
			styles.DimStyle.Render("enter unlock · esc cancel")
	}

	box := styles.ModalStyle.Render(content)
	if m.height > 0 {
		return lipgloss.Place(m.width, max(1, m.height-6), lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// formatClock renders seconds as m:ss (or h:mm:ss past an hour)
func formatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h, rem := total/3600, total%3600
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, rem/60, rem%60)
	}
	return fmt.Sprintf("%d:%02d", rem/60, rem%60)
}
