package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pcormier/wax/internal/domain"
	"github.com/pcormier/wax/internal/log"
	"github.com/pcormier/wax/internal/store"
)

func newAlbumTracker(repo *fakeDiscovery, persist bool) (*HideTracker[domain.DiscoveryAlbum], *store.Store) {
	st := store.Open("", log.NullLogger())
	tracker := NewHideTracker(repo.HideAlbum, domain.DiscoveryAlbum.Key, st, "albums", persist, log.NullLogger())
	return tracker, st
}

func TestHideSuccess(t *testing.T) {
	repo := &fakeDiscovery{}
	tracker, _ := newAlbumTracker(repo, true)
	album := domain.DiscoveryAlbum{Name: "Zombie", Artist: "Fela Kuti"}

	if err := tracker.Hide(context.Background(), album); err != nil {
		t.Fatalf("Hide: %v", err)
	}
	if !tracker.IsHidden(album) {
		t.Error("album should be hidden")
	}
	if len(repo.hiddenItems) != 1 {
		t.Errorf("backend hide calls = %d", len(repo.hiddenItems))
	}
}

func TestHideIsOptimistic(t *testing.T) {
	// The item must read as hidden while the backend call is in flight;
	// the fake observes that from inside the call.
	tracker := (*HideTracker[domain.DiscoveryTrack])(nil)
	sawHidden := false
	track := domain.DiscoveryTrack{Title: "Lady", Artist: "Fela Kuti"}

	apiFn := func(context.Context, domain.DiscoveryTrack) error {
		sawHidden = tracker.IsHidden(track)
		return nil
	}
	tracker = NewHideTracker(apiFn, domain.DiscoveryTrack.Key, store.Open("", log.NullLogger()), "tracks", false, log.NullLogger())

	if err := tracker.Hide(context.Background(), track); err != nil {
		t.Fatalf("Hide: %v", err)
	}
	if !sawHidden {
		t.Error("item was not hidden before the backend call settled")
	}
}

func TestHideFailureRevertsSessionHide(t *testing.T) {
	repo := &fakeDiscovery{hideErr: errors.New("offline")}
	st := store.Open("", log.NullLogger())
	tracker := NewHideTracker(repo.HideTrack, domain.DiscoveryTrack.Key, st, "tracks", false, log.NullLogger())
	track := domain.DiscoveryTrack{Title: "Lady", Artist: "Fela Kuti"}

	if err := tracker.Hide(context.Background(), track); err == nil {
		t.Fatal("expected error")
	}
	if tracker.IsHidden(track) {
		t.Error("non-persistent hide should revert on failure")
	}
}

func TestHideFailureKeepsPersistedHide(t *testing.T) {
	repo := &fakeDiscovery{hideErr: errors.New("offline")}
	tracker, st := newAlbumTracker(repo, true)
	album := domain.DiscoveryAlbum{Name: "Zombie", Artist: "Fela Kuti"}

	if err := tracker.Hide(context.Background(), album); err == nil {
		t.Fatal("expected error")
	}
	// The session mark is reverted but the persisted entry survives,
	// so the item stays hidden.
	if !tracker.IsHidden(album) {
		t.Error("persistent hide should survive a backend failure")
	}
	if _, ok := st.HiddenKeys("albums")[album.Key()]; !ok {
		t.Error("persisted entry missing")
	}
}
