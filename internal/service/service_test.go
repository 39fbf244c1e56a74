package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pcormier/wax/internal/domain"
	"github.com/pcormier/wax/internal/log"
)

func TestSearchSkipsBlankQueries(t *testing.T) {
	catalog := &fakeCatalog{
		searchFn: func(string) ([]domain.SearchResult, error) {
			t.Fatal("blank query must not hit the backend")
			return nil, nil
		},
		albumsFn: func(string) ([]domain.AlbumResult, error) {
			t.Fatal("blank query must not hit the backend")
			return nil, nil
		},
	}
	svc := NewSearchService(catalog, log.NullLogger())

	for _, query := range []string{"", "   ", "\t\n"} {
		if results, err := svc.Tracks(context.Background(), query); err != nil || results != nil {
			t.Errorf("Tracks(%q) = %v, %v", query, results, err)
		}
		if results, err := svc.Albums(context.Background(), query); err != nil || results != nil {
			t.Errorf("Albums(%q) = %v, %v", query, results, err)
		}
	}
}

func TestSearchTrimsQuery(t *testing.T) {
	var seen string
	catalog := &fakeCatalog{
		searchFn: func(query string) ([]domain.SearchResult, error) {
			seen = query
			return nil, nil
		},
	}
	svc := NewSearchService(catalog, log.NullLogger())

	svc.Tracks(context.Background(), "  fela  ")
	if seen != "fela" {
		t.Errorf("query = %q", seen)
	}
}

func TestRateValidatesRange(t *testing.T) {
	repo := &fakeRatings{result: domain.APIResult{Status: domain.StatusSuccess}}
	svc := NewRateService(repo, log.NullLogger())
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6} {
		if _, err := svc.Rate(ctx, "a", "b", rating); err == nil {
			t.Errorf("rating %d should be rejected", rating)
		}
	}
	if repo.calls != 0 {
		t.Error("invalid ratings must not reach the backend")
	}

	if _, err := svc.Rate(ctx, "a", "b", 5); err != nil {
		t.Errorf("Rate(5): %v", err)
	}
	if repo.calls != 1 {
		t.Errorf("backend calls = %d", repo.calls)
	}
}

func TestDownloadWritesSanitizedFile(t *testing.T) {
	catalog := &fakeCatalog{
		dataFn: func(string) ([]byte, error) { return []byte("audio-bytes"), nil },
	}
	dir := t.TempDir()
	svc := NewDownloadService(catalog, dir, log.NullLogger())

	track := domain.Track{ID: "7", Title: "What: Is / This?", Artist: "A*B"}
	path, err := svc.Download(context.Background(), track)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if filepath.Base(path) != "AB - What- Is - This.mp3" {
		t.Errorf("file name = %q", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "audio-bytes" {
		t.Errorf("file content = %q, %v", data, err)
	}
}

func TestDownloadErrorPropagates(t *testing.T) {
	catalog := &fakeCatalog{
		dataFn: func(string) ([]byte, error) { return nil, errors.New("offline") },
	}
	svc := NewDownloadService(catalog, t.TempDir(), log.NullLogger())

	if _, err := svc.Download(context.Background(), domain.Track{ID: "7", Title: "T"}); err == nil {
		t.Fatal("expected error")
	}
}
