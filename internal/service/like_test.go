package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pcormier/wax/internal/domain"
	"github.com/pcormier/wax/internal/log"
	"github.com/pcormier/wax/internal/store"
)

func TestLikeRecordsSuccessLocally(t *testing.T) {
	repo := &fakePlaylists{result: domain.APIResult{Status: domain.StatusSuccess, Message: "Track added"}}
	st := store.Open("", log.NullLogger())
	svc := NewLikeService(repo, st, log.NullLogger())
	track := domain.Track{Title: "Water", Artist: "Fela Kuti", SpotifyID: "sp1"}

	result, err := svc.Like(context.Background(), track, "Afrobeat & Highlife")
	if err != nil {
		t.Fatalf("Like: %v", err)
	}
	if !result.OK() {
		t.Errorf("result = %+v", result)
	}
	if !svc.IsLiked("Water", "Fela Kuti") {
		t.Error("successful like should be recorded locally")
	}
	if repo.calls[0] != "Afrobeat & Highlife" {
		t.Errorf("playlist = %q", repo.calls[0])
	}
}

func TestLikeBackendRejectionNotRecorded(t *testing.T) {
	repo := &fakePlaylists{result: domain.APIResult{Status: domain.StatusError, Message: "No such playlist"}}
	svc := NewLikeService(repo, store.Open("", log.NullLogger()), log.NullLogger())
	track := domain.Track{Title: "Water", Artist: "Fela Kuti"}

	result, err := svc.Like(context.Background(), track, "Nope")
	if err != nil {
		t.Fatalf("Like: %v", err)
	}
	if result.OK() {
		t.Error("result should be an error status")
	}
	if svc.IsLiked("Water", "Fela Kuti") {
		t.Error("rejected like must not be recorded")
	}
}

func TestLikeTransportErrorNotRecorded(t *testing.T) {
	repo := &fakePlaylists{err: errors.New("offline")}
	svc := NewLikeService(repo, store.Open("", log.NullLogger()), log.NullLogger())

	if _, err := svc.Like(context.Background(), domain.Track{Title: "W", Artist: "F"}, "Beats"); err == nil {
		t.Fatal("expected error")
	}
	if svc.IsLiked("W", "F") {
		t.Error("failed like must not be recorded")
	}
}

func TestPlaylistsIsACopy(t *testing.T) {
	svc := NewLikeService(&fakePlaylists{}, store.Open("", log.NullLogger()), log.NullLogger())

	names := svc.Playlists()
	if len(names) != 19 {
		t.Fatalf("got %d playlists", len(names))
	}
	names[0] = "mutated"
	if svc.Playlists()[0] == "mutated" {
		t.Error("Playlists should return a copy")
	}
}
