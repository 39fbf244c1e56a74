// Package store is the local persistence layer: discovery listing caches
// with TTL, hidden-item sets with per-entry expiry, liked tracks, and the
// access-code flag. Storage is strictly best-effort; every failure degrades
// to a cache miss or a silent no-op so correctness never depends on it.
package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pcormier/wax/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketListings = []byte("listings")
	bucketHidden   = []byte("hidden")
	bucketLikes    = []byte("likes")
	bucketSession  = []byte("session")
)

// listingEntry wraps cached listing data with its write time.
type listingEntry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// hiddenSet is the persisted form of a hidden-item namespace.
type hiddenSet struct {
	Items []domain.HiddenEntry `json:"items"`
}

// Store persists app state in BoltDB with an in-memory overlay. With no
// directory (or when opening fails) it runs memory-only and everything
// still works for the session.
type Store struct {
	db     *bolt.DB
	mu     sync.RWMutex // Protects mem
	mem    map[string][]byte
	logger *slog.Logger

	now func() time.Time // Injectable clock for tests
}

// Open opens or creates the store under dir. An empty dir selects
// memory-only mode; open failures degrade to memory-only instead of
// erroring.
func Open(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		mem:    make(map[string][]byte),
		logger: logger,
		now:    time.Now,
	}

	if dir == "" {
		return s
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Warn("cache dir unavailable, running memory-only", "dir", dir, "error", err)
		return s
	}

	db, err := bolt.Open(filepath.Join(dir, "wax.db"), 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		logger.Warn("cache db unavailable, running memory-only", "error", err)
		return s
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketListings, bucketHidden, bucketLikes, bucketSession} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		logger.Warn("cache db unusable, running memory-only", "error", err)
		return s
	}

	s.db = db
	return s
}

// Close closes the underlying database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest any) bool {
	memKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.mem[memKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to the memory overlay
	s.mu.Lock()
	s.mem[memKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *Store) set(bucket []byte, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Debug("store marshal failed", "key", key, "error", err)
		return
	}

	s.mu.Lock()
	s.mem[string(bucket)+":"+key] = data
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
	if err != nil {
		s.logger.Debug("store write failed", "key", key, "error", err)
	}
}

func (s *Store) delete(bucket []byte, key string) {
	s.mu.Lock()
	delete(s.mem, string(bucket)+":"+key)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucket); b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

// === Listing cache ===

// GetListing unmarshals a cached listing into dest when an entry exists
// and is younger than maxAge.
func (s *Store) GetListing(key string, maxAge time.Duration, dest any) bool {
	var entry listingEntry
	if !s.get(bucketListings, key, &entry) {
		return false
	}
	if s.now().Sub(entry.Timestamp) >= maxAge {
		return false
	}
	return json.Unmarshal(entry.Data, dest) == nil
}

// PutListing stores a listing with the current time
func (s *Store) PutListing(key string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		s.logger.Debug("listing marshal failed", "key", key, "error", err)
		return
	}
	s.set(bucketListings, key, listingEntry{Data: raw, Timestamp: s.now()})
}

// DeleteListing drops a cached listing so the next load refetches
func (s *Store) DeleteListing(key string) {
	s.delete(bucketListings, key)
}

// === Hidden items ===

// AddHidden records a hidden key in the namespace with the given lifetime.
// An existing entry for the same key is replaced.
func (s *Store) AddHidden(namespace, key string, ttl time.Duration) {
	var set hiddenSet
	s.get(bucketHidden, namespace, &set)

	now := s.now()
	items := make([]domain.HiddenEntry, 0, len(set.Items)+1)
	for _, item := range set.Items {
		if item.Key != key && !item.Expired(now) {
			items = append(items, item)
		}
	}
	items = append(items, domain.HiddenEntry{
		Key:       key,
		HiddenAt:  now,
		ExpiresAt: now.Add(ttl),
	})

	s.set(bucketHidden, namespace, hiddenSet{Items: items})
}

// HiddenKeys returns the non-expired hidden keys for a namespace, purging
// expired entries as a side effect.
func (s *Store) HiddenKeys(namespace string) map[string]struct{} {
	var set hiddenSet
	if !s.get(bucketHidden, namespace, &set) {
		return map[string]struct{}{}
	}

	now := s.now()
	valid := make([]domain.HiddenEntry, 0, len(set.Items))
	keys := make(map[string]struct{}, len(set.Items))
	for _, item := range set.Items {
		if item.Expired(now) {
			continue
		}
		valid = append(valid, item)
		keys[item.Key] = struct{}{}
	}

	if len(valid) != len(set.Items) {
		s.set(bucketHidden, namespace, hiddenSet{Items: valid})
	}

	return keys
}

// ClearHidden drops every hidden entry in a namespace
func (s *Store) ClearHidden(namespace string) {
	s.delete(bucketHidden, namespace)
}

// === Liked tracks ===

// AddLikedTrack appends a liked track to the local list
func (s *Store) AddLikedTrack(track domain.LikedTrack) {
	var tracks []domain.LikedTrack
	s.get(bucketLikes, "list", &tracks)
	s.set(bucketLikes, "list", append(tracks, track))
}

// LikedTracks returns every locally recorded liked track
func (s *Store) LikedTracks() []domain.LikedTrack {
	var tracks []domain.LikedTrack
	s.get(bucketLikes, "list", &tracks)
	return tracks
}

// IsLiked reports whether a title+artist pair was liked before.
// Matching is case-insensitive to survive backend casing drift.
func (s *Store) IsLiked(title, artist string) bool {
	for _, t := range s.LikedTracks() {
		if strings.EqualFold(t.Title, title) && strings.EqualFold(t.Artist, artist) {
			return true
		}
	}
	return false
}

// === Session ===

// SetAuthenticated persists the access-code gate flag
func (s *Store) SetAuthenticated(ok bool) {
	if ok {
		s.set(bucketSession, "authenticated", true)
		return
	}
	s.delete(bucketSession, "authenticated")
}

// Authenticated reports whether the access-code gate was passed before
func (s *Store) Authenticated() bool {
	var ok bool
	s.get(bucketSession, "authenticated", &ok)
	return ok
}
