package service

import (
	"context"
	"errors"
	"sync"

	"github.com/pcormier/wax/internal/domain"
)

// fakeCatalog implements domain.CatalogRepository with function hooks;
// unset hooks return zero values.
type fakeCatalog struct {
	mu           sync.Mutex
	resolveCalls []string
	hashCalls    []string

	resolveFn func(trackID, title, artist string) (*domain.Track, error)
	hashFn    func(hash string) (*domain.Track, error)
	tracksFn  func(albumID int) ([]domain.AlbumTrack, error)
	searchFn  func(query string) ([]domain.SearchResult, error)
	albumsFn  func(query string) ([]domain.AlbumResult, error)
	dataFn    func(trackID string) ([]byte, error)
}

func (f *fakeCatalog) SearchTracks(_ context.Context, query string) ([]domain.SearchResult, error) {
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(query)
}

func (f *fakeCatalog) SearchAlbums(_ context.Context, query string) ([]domain.AlbumResult, error) {
	if f.albumsFn == nil {
		return nil, nil
	}
	return f.albumsFn(query)
}

func (f *fakeCatalog) ResolveStream(_ context.Context, trackID, title, artist string) (*domain.Track, error) {
	f.mu.Lock()
	f.resolveCalls = append(f.resolveCalls, trackID)
	f.mu.Unlock()
	if f.resolveFn == nil {
		return &domain.Track{ID: trackID, Title: title, Artist: artist, StreamURL: "https://cdn/" + trackID}, nil
	}
	return f.resolveFn(trackID, title, artist)
}

func (f *fakeCatalog) ResolveStreamByHash(_ context.Context, hash string) (*domain.Track, error) {
	f.mu.Lock()
	f.hashCalls = append(f.hashCalls, hash)
	f.mu.Unlock()
	if f.hashFn == nil {
		return &domain.Track{ID: "h-" + hash, ShareHash: hash, StreamURL: "https://cdn/" + hash}, nil
	}
	return f.hashFn(hash)
}

func (f *fakeCatalog) AlbumTracks(_ context.Context, albumID int) ([]domain.AlbumTrack, error) {
	if f.tracksFn == nil {
		return nil, errors.New("no tracklist configured")
	}
	return f.tracksFn(albumID)
}

func (f *fakeCatalog) Download(_ context.Context, trackID, _, _ string) ([]byte, error) {
	if f.dataFn == nil {
		return nil, errors.New("no download configured")
	}
	return f.dataFn(trackID)
}

// fakeDiscovery implements domain.DiscoveryRepository with call counting
type fakeDiscovery struct {
	mu          sync.Mutex
	albumCalls  int
	trackCalls  int
	albums      []domain.DiscoveryAlbum
	tracks      []domain.DiscoveryTrack
	listErr     error
	hideErr     error
	hiddenItems []string
}

func (f *fakeDiscovery) AlbumsToDiscover(context.Context) ([]domain.DiscoveryAlbum, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.albumCalls++
	return f.albums, f.listErr
}

func (f *fakeDiscovery) TracksToDiscover(context.Context) ([]domain.DiscoveryTrack, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trackCalls++
	return f.tracks, f.listErr
}

func (f *fakeDiscovery) HideAlbum(_ context.Context, album domain.DiscoveryAlbum) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hideErr != nil {
		return f.hideErr
	}
	f.hiddenItems = append(f.hiddenItems, album.Key())
	return nil
}

func (f *fakeDiscovery) HideTrack(_ context.Context, track domain.DiscoveryTrack) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hideErr != nil {
		return f.hideErr
	}
	f.hiddenItems = append(f.hiddenItems, track.Key())
	return nil
}

// fakePlaylists implements domain.PlaylistRepository
type fakePlaylists struct {
	result domain.APIResult
	err    error
	calls  []string // playlist names
}

func (f *fakePlaylists) LikeTrack(_ context.Context, _, _, playlist, _ string) (domain.APIResult, error) {
	f.calls = append(f.calls, playlist)
	return f.result, f.err
}

// nullAudio satisfies the session's audio element with no-ops
type nullAudio struct{}

func (nullAudio) Play(string) error       { return nil }
func (nullAudio) Load(string) error       { return nil }
func (nullAudio) Pause() error            { return nil }
func (nullAudio) Resume() error           { return nil }
func (nullAudio) SeekTo(float64) error    { return nil }
func (nullAudio) SetVolume(float64) error { return nil }

// fakeRatings implements domain.RatingRepository
type fakeRatings struct {
	result domain.APIResult
	err    error
	calls  int
}

func (f *fakeRatings) RateAlbum(_ context.Context, _, _ string, _ int) (domain.APIResult, error) {
	f.calls++
	return f.result, f.err
}
