package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pcormier/wax/internal/store"
)

// HiddenTTL is how long a persisted hide survives across sessions
const HiddenTTL = 12 * time.Hour

// HideTracker suppresses discovery entries with optimistic updates: the
// item reads as hidden the moment Hide is called, before the backend call
// settles.
//
// Rollback is deliberately asymmetric. When the backend call fails, the
// in-memory session hide is reverted, but a persisted hide is kept: the
// user's intent survives a flaky backend instead of flip-flopping the UI.
type HideTracker[T any] struct {
	apiFn     func(context.Context, T) error
	keyFn     func(T) string
	store     *store.Store
	namespace string
	persist   bool
	logger    *slog.Logger

	mu      sync.Mutex
	session map[string]struct{}
}

// NewHideTracker creates a tracker for one discovery namespace. persist
// controls whether hides outlive the session (12h expiry).
func NewHideTracker[T any](
	apiFn func(context.Context, T) error,
	keyFn func(T) string,
	st *store.Store,
	namespace string,
	persist bool,
	logger *slog.Logger,
) *HideTracker[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &HideTracker[T]{
		apiFn:     apiFn,
		keyFn:     keyFn,
		store:     st,
		namespace: namespace,
		persist:   persist,
		logger:    logger,
		session:   make(map[string]struct{}),
	}
}

// Hide marks the item hidden immediately, then calls the backend. On
// failure the session mark is reverted and the error returned; the
// persisted mark, if any, stays.
func (h *HideTracker[T]) Hide(ctx context.Context, item T) error {
	key := h.keyFn(item)

	h.mu.Lock()
	h.session[key] = struct{}{}
	h.mu.Unlock()

	if h.persist {
		h.store.AddHidden(h.namespace, key, HiddenTTL)
	}

	if err := h.apiFn(ctx, item); err != nil {
		h.logger.Error("hide failed, reverting session hide", "key", key, "error", err)
		h.mu.Lock()
		delete(h.session, key)
		h.mu.Unlock()
		return err
	}
	return nil
}

// IsHidden reports whether the item is hidden this session or by a
// non-expired persisted entry.
func (h *HideTracker[T]) IsHidden(item T) bool {
	key := h.keyFn(item)

	h.mu.Lock()
	_, ok := h.session[key]
	h.mu.Unlock()
	if ok {
		return true
	}

	if !h.persist {
		return false
	}
	_, ok = h.store.HiddenKeys(h.namespace)[key]
	return ok
}
