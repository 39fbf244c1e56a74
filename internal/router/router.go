package router

import (
	"log/slog"
	"sync"
)

// Router keeps the navigation history stack and applies the auth guard.
// Pushing an identical route is a no-op so repeated clicks do not pollute
// back/forward history.
type Router struct {
	authed func() bool
	logger *slog.Logger

	mu      sync.Mutex
	history []Route
	idx     int
}

// New creates a router positioned at home. authed gates the digging view;
// nil means always authenticated.
func New(authed func() bool, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	if authed == nil {
		authed = func() bool { return true }
	}
	return &Router{
		authed:  authed,
		logger:  logger,
		history: []Route{Home()},
	}
}

// Current returns the active route
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[r.idx]
}

// Push navigates to a route, truncating any forward history. Unauthorized
// digging navigation silently rewrites to home instead of erroring.
func (r *Router) Push(route Route) Route {
	route = r.guard(route)

	r.mu.Lock()
	defer r.mu.Unlock()

	if route == r.history[r.idx] {
		return route
	}

	r.history = append(r.history[:r.idx+1], route)
	r.idx = len(r.history) - 1
	return route
}

// Replace swaps the active route without growing history. Used when a
// shared track resolves and the view lands back on home.
func (r *Router) Replace(route Route) Route {
	route = r.guard(route)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.history[r.idx] = route
	return route
}

// Back moves one step back in history
func (r *Router) Back() (Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.idx == 0 {
		return r.history[r.idx], false
	}
	r.idx--
	return r.history[r.idx], true
}

// Forward moves one step forward in history
func (r *Router) Forward() (Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.idx >= len(r.history)-1 {
		return r.history[r.idx], false
	}
	r.idx++
	return r.history[r.idx], true
}

// guard rewrites guarded routes for unauthenticated users
func (r *Router) guard(route Route) Route {
	if route.Kind == KindDigging && !r.authed() {
		r.logger.Info("digging requires authentication, redirecting home")
		return Home()
	}
	return route
}
