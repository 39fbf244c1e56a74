package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pcormier/wax/internal/domain"
	"github.com/pcormier/wax/internal/log"
)

func TestAlbumLoadSortsAndSetsContext(t *testing.T) {
	catalog := &fakeCatalog{
		tracksFn: func(albumID int) ([]domain.AlbumTrack, error) {
			if albumID != 12 {
				t.Errorf("albumID = %d", albumID)
			}
			return []domain.AlbumTrack{
				{ID: 3, Title: "C", Number: 3},
				{ID: 1, Title: "A", Number: 1},
				{ID: 2, Title: "B", Number: 2},
			}, nil
		},
	}
	sess := newTestSession()
	loader := NewAlbumLoader(catalog, sess, log.NullLogger())
	info := domain.AlbumInfo{Name: "Expensive Shit", Artist: "Fela Kuti", CoverURL: "c.jpg"}

	tracks, err := loader.Load(context.Background(), 12, info, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tracks[0].Number != 1 || tracks[1].Number != 2 || tracks[2].Number != 3 {
		t.Errorf("tracks not in album order: %+v", tracks)
	}

	st := sess.Snapshot()
	if st.AlbumInfo == nil || st.AlbumInfo.Name != "Expensive Shit" {
		t.Fatalf("album context = %+v", st.AlbumInfo)
	}
	if len(st.AlbumTracks) != 3 {
		t.Errorf("album tracks = %+v", st.AlbumTracks)
	}

	// First track preloaded paused with album metadata filled in
	if st.Track == nil || st.Track.ID != "1" || st.Playing {
		t.Errorf("preloaded track = %+v playing=%v", st.Track, st.Playing)
	}
	if st.Track.Album != "Expensive Shit" || st.Track.CoverURL != "c.jpg" {
		t.Errorf("preloaded metadata = %+v", st.Track)
	}
}

func TestAlbumLoadPreloadFailureIsNonFatal(t *testing.T) {
	catalog := &fakeCatalog{
		tracksFn: func(int) ([]domain.AlbumTrack, error) {
			return []domain.AlbumTrack{{ID: 1, Title: "A", Number: 1}}, nil
		},
		resolveFn: func(string, string, string) (*domain.Track, error) {
			return nil, errors.New("offline")
		},
	}
	sess := newTestSession()
	loader := NewAlbumLoader(catalog, sess, log.NullLogger())

	tracks, err := loader.Load(context.Background(), 1, domain.AlbumInfo{Name: "X"}, true)
	if err != nil {
		t.Fatalf("Load should not fail on preload error: %v", err)
	}
	if len(tracks) != 1 {
		t.Errorf("tracks = %+v", tracks)
	}
	if sess.Snapshot().AlbumInfo == nil {
		t.Error("album context should still be installed")
	}
}

func TestAlbumLoadErrorPropagates(t *testing.T) {
	catalog := &fakeCatalog{
		tracksFn: func(int) ([]domain.AlbumTrack, error) {
			return nil, errors.New("offline")
		},
	}
	loader := NewAlbumLoader(catalog, newTestSession(), log.NullLogger())

	if _, err := loader.Load(context.Background(), 1, domain.AlbumInfo{}, false); err == nil {
		t.Fatal("expected error")
	}
}

func TestAlbumLoadWithoutPreload(t *testing.T) {
	catalog := &fakeCatalog{
		tracksFn: func(int) ([]domain.AlbumTrack, error) {
			return []domain.AlbumTrack{{ID: 1, Title: "A", Number: 1}}, nil
		},
	}
	sess := newTestSession()
	loader := NewAlbumLoader(catalog, sess, log.NullLogger())

	if _, err := loader.Load(context.Background(), 1, domain.AlbumInfo{Name: "X"}, false); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(catalog.resolveCalls) != 0 {
		t.Error("no stream should be resolved when loadFirst is false")
	}
	if sess.Snapshot().Track != nil {
		t.Error("no track should be loaded")
	}
}
