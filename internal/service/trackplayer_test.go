package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pcormier/wax/internal/domain"
	"github.com/pcormier/wax/internal/log"
	"github.com/pcormier/wax/internal/session"
)

func newTestSession() *session.Session {
	return session.New(nullAudio{}, nil, nil, nil, log.NullLogger())
}

func TestPlayOverridesMetadata(t *testing.T) {
	catalog := &fakeCatalog{}
	sess := newTestSession()
	tp := NewTrackPlayer(catalog, sess, log.NullLogger())

	track, err := tp.Play(context.Background(), "7", "Water", "Fela Kuti", PlayOptions{
		AlbumName: "Expensive Shit",
		CoverURL:  "cover.jpg",
		SpotifyID: "sp1",
		Origin:    domain.OriginSearch,
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if track.Album != "Expensive Shit" || track.CoverURL != "cover.jpg" || track.SpotifyID != "sp1" {
		t.Errorf("track = %+v", track)
	}
	if track.Origin != domain.OriginSearch {
		t.Errorf("origin = %v", track.Origin)
	}

	st := sess.Snapshot()
	if st.Track == nil || st.Track.ID != "7" || !st.Playing {
		t.Errorf("session state = %+v", st)
	}
}

func TestPlayClearsAlbumContext(t *testing.T) {
	catalog := &fakeCatalog{}
	sess := newTestSession()
	sess.SetAlbumContext([]domain.AlbumTrack{{ID: 1, Title: "A"}}, domain.AlbumInfo{Name: "Old"})
	tp := NewTrackPlayer(catalog, sess, log.NullLogger())

	if _, err := tp.Play(context.Background(), "7", "t", "a", PlayOptions{ClearAlbum: true}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if sess.Snapshot().AlbumInfo != nil {
		t.Error("album context should be cleared for standalone plays")
	}
}

func TestPlayFailureLeavesSessionUntouched(t *testing.T) {
	catalog := &fakeCatalog{}
	sess := newTestSession()
	tp := NewTrackPlayer(catalog, sess, log.NullLogger())

	// Something is already playing
	if _, err := tp.Play(context.Background(), "1", "First", "A", PlayOptions{}); err != nil {
		t.Fatalf("Play: %v", err)
	}

	catalog.resolveFn = func(string, string, string) (*domain.Track, error) {
		return nil, errors.New("offline")
	}
	if _, err := tp.Play(context.Background(), "2", "Second", "A", PlayOptions{}); err == nil {
		t.Fatal("expected error")
	}

	st := sess.Snapshot()
	if st.Track == nil || st.Track.ID != "1" || !st.Playing {
		t.Errorf("session state = %+v, prior track should survive", st)
	}
}

func TestPlayPausedLoadsWithoutStarting(t *testing.T) {
	catalog := &fakeCatalog{}
	sess := newTestSession()
	tp := NewTrackPlayer(catalog, sess, log.NullLogger())

	if _, err := tp.Play(context.Background(), "7", "t", "a", PlayOptions{Paused: true}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	st := sess.Snapshot()
	if st.Playing {
		t.Error("paused play should not start playback")
	}
	if st.Track == nil || st.Track.ID != "7" {
		t.Errorf("track = %+v", st.Track)
	}
}

func TestPlaySharedNumericRef(t *testing.T) {
	catalog := &fakeCatalog{}
	sess := newTestSession()
	tp := NewTrackPlayer(catalog, sess, log.NullLogger())

	track, err := tp.PlayShared(context.Background(), "12345")
	if err != nil {
		t.Fatalf("PlayShared: %v", err)
	}
	if len(catalog.resolveCalls) != 1 || catalog.resolveCalls[0] != "12345" {
		t.Errorf("resolve calls = %v", catalog.resolveCalls)
	}
	if len(catalog.hashCalls) != 0 {
		t.Errorf("hash calls = %v", catalog.hashCalls)
	}
	if track.Origin != domain.OriginShared {
		t.Errorf("origin = %v", track.Origin)
	}
	if sess.Snapshot().Playing {
		t.Error("shared track must land paused")
	}
}

func TestPlaySharedHashRef(t *testing.T) {
	catalog := &fakeCatalog{}
	sess := newTestSession()
	sess.SetAlbumContext([]domain.AlbumTrack{{ID: 1}}, domain.AlbumInfo{Name: "Old"})
	tp := NewTrackPlayer(catalog, sess, log.NullLogger())

	if _, err := tp.PlayShared(context.Background(), "cafebabe"); err != nil {
		t.Fatalf("PlayShared: %v", err)
	}
	if len(catalog.hashCalls) != 1 || catalog.hashCalls[0] != "cafebabe" {
		t.Errorf("hash calls = %v", catalog.hashCalls)
	}
	if sess.Snapshot().AlbumInfo != nil {
		t.Error("shared play should clear the album context")
	}
}
