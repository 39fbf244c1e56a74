package service

import (
	"context"
	"testing"

	"github.com/pcormier/wax/internal/domain"
	"github.com/pcormier/wax/internal/log"
	"github.com/pcormier/wax/internal/store"
)

func TestDiscoveryAlbumsCacheFirst(t *testing.T) {
	repo := &fakeDiscovery{albums: []domain.DiscoveryAlbum{{Name: "Zombie", Artist: "Fela Kuti"}}}
	st := store.Open("", log.NullLogger())
	svc := NewDiscoveryService(repo, st, log.NullLogger())
	ctx := context.Background()

	albums, err := svc.Albums(ctx)
	if err != nil {
		t.Fatalf("Albums: %v", err)
	}
	if len(albums) != 1 {
		t.Fatalf("albums = %+v", albums)
	}

	// Second load within the TTL is served from the cache
	if _, err := svc.Albums(ctx); err != nil {
		t.Fatalf("Albums: %v", err)
	}
	if repo.albumCalls != 1 {
		t.Errorf("repo called %d times, want 1", repo.albumCalls)
	}

	// An explicit refresh invalidates and refetches
	svc.RefreshAlbums()
	if _, err := svc.Albums(ctx); err != nil {
		t.Fatalf("Albums: %v", err)
	}
	if repo.albumCalls != 2 {
		t.Errorf("repo called %d times after refresh, want 2", repo.albumCalls)
	}
}

func TestDiscoveryTracksCacheFirst(t *testing.T) {
	repo := &fakeDiscovery{tracks: []domain.DiscoveryTrack{{Title: "Lady", Artist: "Fela Kuti"}}}
	st := store.Open("", log.NullLogger())
	svc := NewDiscoveryService(repo, st, log.NullLogger())
	ctx := context.Background()

	svc.Tracks(ctx)
	svc.Tracks(ctx)
	if repo.trackCalls != 1 {
		t.Errorf("repo called %d times, want 1", repo.trackCalls)
	}

	svc.RefreshTracks()
	svc.Tracks(ctx)
	if repo.trackCalls != 2 {
		t.Errorf("repo called %d times after refresh, want 2", repo.trackCalls)
	}
}

func TestFilterAlbums(t *testing.T) {
	svc := NewDiscoveryService(&fakeDiscovery{}, store.Open("", log.NullLogger()), log.NullLogger())
	albums := []domain.DiscoveryAlbum{
		{Name: "Expensive Shit", Artist: "Fela Kuti"},
		{Name: "Homenaje", Artist: "Grupo Irakere"},
	}

	if got := svc.FilterAlbums(albums, ""); len(got) != 2 {
		t.Errorf("empty query filtered to %d", len(got))
	}
	got := svc.FilterAlbums(albums, "fela")
	if len(got) != 1 || got[0].Artist != "Fela Kuti" {
		t.Errorf("got %+v", got)
	}
	if got := svc.FilterAlbums(albums, "zzz"); len(got) != 0 {
		t.Errorf("got %+v, want none", got)
	}
}

func TestFilterTracks(t *testing.T) {
	svc := NewDiscoveryService(&fakeDiscovery{}, store.Open("", log.NullLogger()), log.NullLogger())
	tracks := []domain.DiscoveryTrack{
		{Title: "Water No Get Enemy", Artist: "Fela Kuti"},
		{Title: "Chameleon", Artist: "Herbie Hancock"},
	}

	got := svc.FilterTracks(tracks, "herbie")
	if len(got) != 1 || got[0].Title != "Chameleon" {
		t.Errorf("got %+v", got)
	}
}
