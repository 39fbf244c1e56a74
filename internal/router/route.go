// Package router maps path strings to view states and back. Paths are the
// app's deep-link currency: inbound links arrive as CLI arguments or the
// open-link prompt, outbound links are copied to the clipboard, and an
// in-app history stack gives back/forward navigation over them.
package router

import (
	"encoding/base64"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/pcormier/wax/internal/domain"
)

// Kind discriminates route variants
type Kind int

const (
	KindHome Kind = iota
	KindDigging
	KindAlbum
	KindSharedTrack
)

// Tab selects the digging sub-view
type Tab int

const (
	TabTracks Tab = iota
	TabAlbums
)

// String returns the path segment for the tab
func (t Tab) String() string {
	if t == TabAlbums {
		return "albums"
	}
	return "tracks"
}

// Route is a parsed view state. The zero value is the home route.
type Route struct {
	Kind    Kind
	Tab     Tab    // Digging only
	Page    int    // Digging only, 1-based
	AlbumID int    // Album only
	Ref     string // SharedTrack only: hash, numeric id, or share slug
}

// Home returns the home (search) route
func Home() Route { return Route{Kind: KindHome} }

// Digging returns a digging route with a validated page
func Digging(tab Tab, page int) Route {
	if page < 1 {
		page = 1
	}
	return Route{Kind: KindDigging, Tab: tab, Page: page}
}

// Album returns an album detail route
func Album(id int) Route { return Route{Kind: KindAlbum, AlbumID: id} }

// SharedTrack returns an inbound shared-track route
func SharedTrack(ref string) Route { return Route{Kind: KindSharedTrack, Ref: ref} }

var (
	albumRe = regexp.MustCompile(`^/album/(\d+)$`)
	// Share refs: hex hashes, numeric ids, and url-safe base64 slugs.
	// Legacy /track/ links used the same charset.
	trackRe = regexp.MustCompile(`^/(?:play|track)/([A-Za-z0-9+/=_-]+)$`)
)

// Parse maps a raw path (optionally with query) to a Route. Unknown paths
// parse as home; Parse never fails.
func Parse(raw string) Route {
	u, err := url.Parse(raw)
	if err != nil {
		return Home()
	}
	path := strings.TrimRight(u.Path, "/")
	if path == "" {
		return Home()
	}

	if m := albumRe.FindStringSubmatch(path); m != nil {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			return Home()
		}
		return Album(id)
	}

	if m := trackRe.FindStringSubmatch(path); m != nil {
		return SharedTrack(m[1])
	}

	switch path {
	case "/digging", "/digging/tracks":
		return Digging(TabTracks, parsePage(u.Query().Get("page")))
	case "/digging/albums":
		return Digging(TabAlbums, parsePage(u.Query().Get("page")))
	}

	return Home()
}

// parsePage validates a page query value: minimum 1, non-integers floored,
// garbage falls back to 1. Never fails.
func parsePage(raw string) int {
	if raw == "" {
		return 1
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 1
	}
	page := int(math.Floor(f))
	if page < 1 {
		return 1
	}
	return page
}

// Path builds the canonical path for a route. Page 1 omits the query
// parameter so canonical paths round-trip through Parse.
func Path(r Route) string {
	switch r.Kind {
	case KindDigging:
		path := "/digging/" + r.Tab.String()
		if r.Page > 1 {
			path += fmt.Sprintf("?page=%d", r.Page)
		}
		return path
	case KindAlbum:
		return fmt.Sprintf("/album/%d", r.AlbumID)
	case KindSharedTrack:
		return "/play/" + r.Ref
	default:
		return "/"
	}
}

// ShareSlug derives the deterministic share ref for a track without a
// backend hash: url-safe base64 of the case-folded "artist-title" pair.
func ShareSlug(artist, title string) string {
	folded := strings.ToLower(strings.TrimSpace(artist)) + "-" + strings.ToLower(strings.TrimSpace(title))
	return base64.RawURLEncoding.EncodeToString([]byte(folded))
}

// TrackRoute returns the shareable route for a track, preferring the
// backend hash over the derived slug.
func TrackRoute(track domain.Track) Route {
	if track.ShareHash != "" {
		return SharedTrack(track.ShareHash)
	}
	return SharedTrack(ShareSlug(track.Artist, track.Title))
}

// ShareURL prefixes a canonical path with the public web origin
func ShareURL(baseURL string, r Route) string {
	return strings.TrimRight(baseURL, "/") + Path(r)
}
