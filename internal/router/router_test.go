package router

import "testing"

func TestPushAndBackForward(t *testing.T) {
	r := New(nil, nil)

	r.Push(Digging(TabTracks, 1))
	r.Push(Album(5))

	route, ok := r.Back()
	if !ok || route != Digging(TabTracks, 1) {
		t.Fatalf("Back = %+v, %v", route, ok)
	}
	route, ok = r.Back()
	if !ok || route != Home() {
		t.Fatalf("Back = %+v, %v", route, ok)
	}
	if _, ok := r.Back(); ok {
		t.Fatal("Back past start should report false")
	}

	route, ok = r.Forward()
	if !ok || route != Digging(TabTracks, 1) {
		t.Fatalf("Forward = %+v, %v", route, ok)
	}
}

func TestPushTruncatesForwardHistory(t *testing.T) {
	r := New(nil, nil)
	r.Push(Album(1))
	r.Push(Album(2))
	r.Back()

	r.Push(Album(3))
	if _, ok := r.Forward(); ok {
		t.Fatal("forward history should be gone after a push")
	}
	if r.Current() != Album(3) {
		t.Fatalf("Current = %+v", r.Current())
	}
}

func TestPushIdenticalRouteIsNoOp(t *testing.T) {
	r := New(nil, nil)
	r.Push(Album(1))
	r.Push(Album(1))

	route, ok := r.Back()
	if !ok || route != Home() {
		t.Fatalf("Back = %+v, %v; duplicate push should not grow history", route, ok)
	}
}

func TestGuardRewritesDiggingWhenLocked(t *testing.T) {
	authed := false
	r := New(func() bool { return authed }, nil)

	if got := r.Push(Digging(TabAlbums, 2)); got != Home() {
		t.Fatalf("unauthenticated digging push = %+v, want home", got)
	}
	if r.Current() != Home() {
		t.Fatalf("Current = %+v", r.Current())
	}

	authed = true
	if got := r.Push(Digging(TabAlbums, 2)); got != Digging(TabAlbums, 2) {
		t.Fatalf("authenticated digging push = %+v", got)
	}
}

func TestReplaceKeepsHistoryDepth(t *testing.T) {
	r := New(nil, nil)
	r.Push(SharedTrack("ref"))
	r.Replace(Home())

	if r.Current() != Home() {
		t.Fatalf("Current = %+v", r.Current())
	}
	if _, ok := r.Back(); !ok {
		t.Fatal("history depth should be preserved by Replace")
	}
}
