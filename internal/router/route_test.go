package router

import (
	"encoding/base64"
	"testing"

	"github.com/pcormier/wax/internal/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Route
	}{
		{"root", "/", Home()},
		{"empty", "", Home()},
		{"unknown", "/settings", Home()},
		{"digging bare", "/digging", Digging(TabTracks, 1)},
		{"digging tracks", "/digging/tracks", Digging(TabTracks, 1)},
		{"digging albums", "/digging/albums", Digging(TabAlbums, 1)},
		{"digging trailing slash", "/digging/albums/", Digging(TabAlbums, 1)},
		{"digging paged", "/digging/albums?page=3", Digging(TabAlbums, 3)},
		{"page float floors", "/digging/tracks?page=2.9", Digging(TabTracks, 2)},
		{"page zero clamps", "/digging/tracks?page=0", Digging(TabTracks, 1)},
		{"page negative clamps", "/digging/tracks?page=-4", Digging(TabTracks, 1)},
		{"page garbage", "/digging/tracks?page=banana", Digging(TabTracks, 1)},
		{"album", "/album/42", Album(42)},
		{"album non-numeric", "/album/xyz", Home()},
		{"play ref", "/play/abc123", SharedTrack("abc123")},
		{"legacy track ref", "/track/abc123", SharedTrack("abc123")},
		{"play slug", "/play/YXJ0aXN0LXRpdGxl", SharedTrack("YXJ0aXN0LXRpdGxl")},
		{"play empty ref", "/play/", Home()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.raw); got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPathRoundTrip(t *testing.T) {
	routes := []Route{
		Home(),
		Digging(TabTracks, 1),
		Digging(TabAlbums, 3),
		Album(7),
		SharedTrack("deadbeef"),
	}
	for _, route := range routes {
		if got := Parse(Path(route)); got != route {
			t.Errorf("round trip %+v via %q = %+v", route, Path(route), got)
		}
	}
}

func TestPathPageOne(t *testing.T) {
	if got := Path(Digging(TabAlbums, 1)); got != "/digging/albums" {
		t.Errorf("page 1 path = %q, want no query", got)
	}
	if got := Path(Digging(TabAlbums, 2)); got != "/digging/albums?page=2" {
		t.Errorf("page 2 path = %q", got)
	}
}

func TestShareSlug(t *testing.T) {
	slug := ShareSlug("  Fela Kuti ", "Water No Get Enemy")
	decoded, err := base64.RawURLEncoding.DecodeString(slug)
	if err != nil {
		t.Fatalf("slug is not url-safe base64: %v", err)
	}
	if string(decoded) != "fela kuti-water no get enemy" {
		t.Errorf("decoded slug = %q", decoded)
	}
	// The slug must survive the share-link charset
	if Parse("/play/"+slug).Ref != slug {
		t.Errorf("slug %q does not parse back", slug)
	}
}

func TestTrackRoute(t *testing.T) {
	withHash := domain.Track{Artist: "A", Title: "T", ShareHash: "cafe01"}
	if got := TrackRoute(withHash); got.Ref != "cafe01" {
		t.Errorf("ref = %q, want backend hash", got.Ref)
	}

	noHash := domain.Track{Artist: "A", Title: "T"}
	if got := TrackRoute(noHash); got.Ref != ShareSlug("A", "T") {
		t.Errorf("ref = %q, want derived slug", got.Ref)
	}
}

func TestShareURL(t *testing.T) {
	got := ShareURL("https://music.example.com/", Album(9))
	if got != "https://music.example.com/album/9" {
		t.Errorf("ShareURL = %q", got)
	}
}
