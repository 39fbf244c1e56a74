package tui

import (
	"github.com/pcormier/wax/internal/domain"
	"github.com/pcormier/wax/internal/router"
	"github.com/sahilm/fuzzy"
)

// filteredDiscAlbums is the digging album listing with hidden items
// removed and the live filter applied.
func (m *Model) filteredDiscAlbums() []domain.DiscoveryAlbum {
	albums := make([]domain.DiscoveryAlbum, 0, len(m.discAlbums))
	for _, a := range m.discAlbums {
		if m.hideAlbums.IsHidden(a) {
			continue
		}
		albums = append(albums, a)
	}
	return m.discovery.FilterAlbums(albums, m.filterInput.Value())
}

// filteredDiscTracks is the digging track listing with hidden items
// removed and the live filter applied.
func (m *Model) filteredDiscTracks() []domain.DiscoveryTrack {
	tracks := make([]domain.DiscoveryTrack, 0, len(m.discTracks))
	for _, t := range m.discTracks {
		if m.hideTracks.IsHidden(t) {
			continue
		}
		tracks = append(tracks, t)
	}
	return m.discovery.FilterTracks(tracks, m.filterInput.Value())
}

// visibleCount is the number of rows on the current digging page
func (m *Model) visibleCount() int {
	if m.route.Tab == router.TabAlbums {
		return len(m.pageDiscAlbums())
	}
	return len(m.pageDiscTracks())
}

// totalPages computes the page count for the current tab's filtered list
func (m *Model) totalPages() int {
	n := len(m.filteredDiscAlbums())
	if m.route.Tab == router.TabTracks {
		n = len(m.filteredDiscTracks())
	}
	pages := (n + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// pageDiscAlbums slices the filtered album list to the route's page
func (m *Model) pageDiscAlbums() []domain.DiscoveryAlbum {
	albums := m.filteredDiscAlbums()
	lo, hi := pageBounds(len(albums), m.route.Page)
	return albums[lo:hi]
}

// pageDiscTracks slices the filtered track list to the route's page
func (m *Model) pageDiscTracks() []domain.DiscoveryTrack {
	tracks := m.filteredDiscTracks()
	lo, hi := pageBounds(len(tracks), m.route.Page)
	return tracks[lo:hi]
}

func pageBounds(n, page int) (int, int) {
	lo := (page - 1) * pageSize
	if lo >= n {
		return 0, min(n, pageSize)
	}
	return lo, min(n, lo+pageSize)
}

func (m *Model) selectedDiscAlbum() (domain.DiscoveryAlbum, bool) {
	page := m.pageDiscAlbums()
	if m.diggingCursor >= len(page) {
		return domain.DiscoveryAlbum{}, false
	}
	return page[m.diggingCursor], true
}

func (m *Model) selectedDiscTrack() (domain.DiscoveryTrack, bool) {
	page := m.pageDiscTracks()
	if m.diggingCursor >= len(page) {
		return domain.DiscoveryTrack{}, false
	}
	return page[m.diggingCursor], true
}

// visiblePlaylists ranks the fixed playlist names against the type-ahead
// query in the like modal. An empty query keeps the canonical order.
func (m *Model) visiblePlaylists() []string {
	if m.likeFilter == "" {
		return m.likePlaylists
	}
	matches := fuzzy.Find(m.likeFilter, m.likePlaylists)
	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.Str)
	}
	return out
}
