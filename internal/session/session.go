// Package session owns playback state: what is playing, where in the
// track, and the album context used for auto-advance. It is the single
// writer of that state; the audio element's event stream and user actions
// are the only inputs.
package session

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/pcormier/wax/internal/domain"
	"github.com/pcormier/wax/internal/player"
)

const resolveTimeout = 15 * time.Second

// audioElement is the subset of the player the session drives
// (consumer-defined interface, faked in tests)
type audioElement interface {
	Play(url string) error
	Load(url string) error
	Pause() error
	Resume() error
	SeekTo(seconds float64) error
	SetVolume(v float64) error
}

// streamResolver resolves the next track's stream URL during auto-advance
type streamResolver interface {
	ResolveStream(ctx context.Context, trackID, title, artist string) (*domain.Track, error)
}

// Sink receives now-playing metadata on every state change. The file
// publisher implements it; a nil sink disables publication.
type Sink interface {
	Publish(track domain.Track, playing bool)
}

// State is an immutable snapshot of playback state
type State struct {
	Track       *domain.Track
	Playing     bool
	Position    float64 // Seconds
	Duration    float64 // Seconds
	Volume      float64 // 0..1
	AlbumTracks []domain.AlbumTrack
	AlbumInfo   *domain.AlbumInfo
}

// Session coordinates the audio element, the album context, and state
// consumers.
type Session struct {
	audio    audioElement
	resolver streamResolver
	sink     Sink
	logger   *slog.Logger

	mu          sync.Mutex
	track       *domain.Track
	playing     bool
	position    float64
	duration    float64
	volume      float64
	albumTracks []domain.AlbumTrack
	albumInfo   *domain.AlbumInfo

	// gen invalidates in-flight play requests: a resolution that finishes
	// after a newer request started must not overwrite state.
	gen uint64

	changed   chan struct{}
	trackHook func(domain.Track)
}

// New creates a session and starts consuming the player's event stream.
// The sink may be nil.
func New(audio audioElement, events <-chan player.Event, resolver streamResolver, sink Sink, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		audio:    audio,
		resolver: resolver,
		sink:     sink,
		logger:   logger,
		volume:   1.0,
		changed:  make(chan struct{}, 1),
	}
	if events != nil {
		go s.consumeEvents(events)
	}
	return s
}

// Changed returns a coalescing signal channel that fires on every state
// change. Consumers re-read Snapshot when it fires.
func (s *Session) Changed() <-chan struct{} {
	return s.changed
}

// SetTrackHook registers a callback invoked whenever a track is loaded or
// played. The router uses it to mirror search-origin tracks into the
// current route.
func (s *Session) SetTrackHook(hook func(domain.Track)) {
	s.mu.Lock()
	s.trackHook = hook
	s.mu.Unlock()
}

// Snapshot returns a copy of the current playback state
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Playing:  s.playing,
		Position: s.position,
		Duration: s.duration,
		Volume:   s.volume,
	}
	if s.track != nil {
		t := *s.track
		st.Track = &t
	}
	if s.albumInfo != nil {
		info := *s.albumInfo
		st.AlbumInfo = &info
		st.AlbumTracks = append([]domain.AlbumTrack(nil), s.albumTracks...)
	}
	return st
}

// NewGeneration invalidates every in-flight play request and returns the
// token the caller must present when the request completes.
func (s *Session) NewGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// Play replaces the current track and starts playback
func (s *Session) Play(track domain.Track) {
	s.PlayAt(s.NewGeneration(), track)
}

// PlayAt starts playback for a request begun with NewGeneration. Stale
// requests are dropped silently.
func (s *Session) PlayAt(gen uint64, track domain.Track) {
	s.startTrack(gen, track, true)
}

// LoadTrack replaces the current track without starting playback. Used
// when a shared link resolves to a track that should appear paused.
func (s *Session) LoadTrack(track domain.Track) {
	s.LoadTrackAt(s.NewGeneration(), track)
}

// LoadTrackAt is LoadTrack for a request begun with NewGeneration
func (s *Session) LoadTrackAt(gen uint64, track domain.Track) {
	s.startTrack(gen, track, false)
}

func (s *Session) startTrack(gen uint64, track domain.Track, play bool) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.logger.Debug("dropping stale play request", "title", track.Title, "gen", gen)
		return
	}

	var err error
	if play {
		err = s.audio.Play(track.StreamURL)
	} else {
		err = s.audio.Load(track.StreamURL)
	}
	if err != nil {
		s.mu.Unlock()
		s.logger.Error("failed to start track", "title", track.Title, "error", err)
		return
	}
	s.audio.SetVolume(s.volume)

	s.track = &track
	s.playing = play
	s.position = 0
	s.duration = 0
	hook := s.trackHook
	s.mu.Unlock()

	s.logger.Info("track loaded", "title", track.Title, "artist", track.Artist, "playing", play)

	if hook != nil {
		hook(track)
	}
	s.publish()
	s.notify()
}

// Pause pauses playback
func (s *Session) Pause() {
	s.mu.Lock()
	if err := s.audio.Pause(); err != nil {
		s.logger.Error("pause failed", "error", err)
	}
	s.playing = false
	s.mu.Unlock()
	s.publish()
	s.notify()
}

// Resume continues paused playback
func (s *Session) Resume() {
	s.mu.Lock()
	if s.track == nil {
		s.mu.Unlock()
		return
	}
	if err := s.audio.Resume(); err != nil {
		s.logger.Error("resume failed", "error", err)
	}
	s.playing = true
	s.mu.Unlock()
	s.publish()
	s.notify()
}

// Seek jumps to an absolute position, clamped to [0, duration]
func (s *Session) Seek(seconds float64) {
	s.mu.Lock()
	if seconds < 0 {
		seconds = 0
	}
	if s.duration > 0 && seconds > s.duration {
		seconds = s.duration
	}
	if err := s.audio.SeekTo(seconds); err != nil {
		s.logger.Error("seek failed", "error", err)
	}
	s.position = seconds
	s.mu.Unlock()
	s.notify()
}

// SeekBy seeks relative to the current position (transport ±10s keys)
func (s *Session) SeekBy(delta float64) {
	s.mu.Lock()
	target := s.position + delta
	s.mu.Unlock()
	s.Seek(target)
}

// SetVolume sets the volume for the current and all future tracks
func (s *Session) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.mu.Lock()
	s.volume = v
	if err := s.audio.SetVolume(v); err != nil {
		s.logger.Error("set volume failed", "error", err)
	}
	s.mu.Unlock()
	s.notify()
}

// SetAlbumContext installs an album tracklist for auto-advance. Empty
// tracklists clear the context so the list/metadata invariant holds.
func (s *Session) SetAlbumContext(tracks []domain.AlbumTrack, info domain.AlbumInfo) {
	s.mu.Lock()
	if len(tracks) == 0 {
		s.albumTracks = nil
		s.albumInfo = nil
	} else {
		s.albumTracks = append([]domain.AlbumTrack(nil), tracks...)
		s.albumInfo = &info
	}
	s.mu.Unlock()
	s.notify()
}

// ClearAlbumContext removes the album context; playback of the current
// track continues but nothing will auto-advance.
func (s *Session) ClearAlbumContext() {
	s.SetAlbumContext(nil, domain.AlbumInfo{})
}

// consumeEvents applies player events to session state
func (s *Session) consumeEvents(events <-chan player.Event) {
	for ev := range events {
		switch ev.Kind {
		case player.EventTime:
			s.mu.Lock()
			s.position = ev.Value
			s.mu.Unlock()
			s.notify()
		case player.EventDuration:
			s.mu.Lock()
			s.duration = ev.Value
			s.mu.Unlock()
			s.notify()
		case player.EventEnded:
			s.handleEnded()
		}
	}
}

// handleEnded advances to the next album track or stops. The current track
// is located by id; a track outside the active album stops playback rather
// than guessing.
func (s *Session) handleEnded() {
	s.mu.Lock()

	next, ok := s.nextAlbumTrack()
	if !ok {
		s.playing = false
		s.position = 0
		s.mu.Unlock()
		s.publish()
		s.notify()
		return
	}

	info := *s.albumInfo
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	go s.advanceTo(gen, next, info)
}

// nextAlbumTrack returns the successor of the current track within the
// album context. Callers must hold s.mu.
func (s *Session) nextAlbumTrack() (domain.AlbumTrack, bool) {
	if s.track == nil || s.albumInfo == nil {
		return domain.AlbumTrack{}, false
	}
	for i, at := range s.albumTracks {
		if strconv.Itoa(at.ID) == s.track.ID {
			if i+1 < len(s.albumTracks) {
				return s.albumTracks[i+1], true
			}
			return domain.AlbumTrack{}, false
		}
	}
	return domain.AlbumTrack{}, false
}

// advanceTo resolves and plays the next album track. Resolution failures
// stop playback with nothing but a logged error; there is no retry.
func (s *Session) advanceTo(gen uint64, next domain.AlbumTrack, info domain.AlbumInfo) {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	resolved, err := s.resolver.ResolveStream(ctx, strconv.Itoa(next.ID), next.Title, next.Artist)
	if err != nil {
		s.logger.Error("auto-advance resolution failed", "title", next.Title, "error", err)
		s.mu.Lock()
		if gen == s.gen {
			s.playing = false
		}
		s.mu.Unlock()
		s.publish()
		s.notify()
		return
	}

	track := *resolved
	track.Origin = domain.OriginAlbum
	if track.Album == "" {
		track.Album = info.Name
	}
	if track.CoverURL == "" {
		track.CoverURL = info.CoverURL
	}

	s.PlayAt(gen, track)
}

// publish pushes now-playing metadata to the sink, if any
func (s *Session) publish() {
	if s.sink == nil {
		return
	}
	s.mu.Lock()
	track := s.track
	playing := s.playing
	s.mu.Unlock()
	if track != nil {
		s.sink.Publish(*track, playing)
	}
}

// notify fires the coalescing change signal
func (s *Session) notify() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}
