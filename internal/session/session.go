// Package session tracks per-game state: which image URLs the board already
// shows, paint tokens that invalidate in-flight renders, and durable
// placement records in SQLite.
package session

import (
	"strings"
	"sync"
)

// Session is the in-memory state of one running game. Safe for concurrent
// use by racing resolutions.
type Session struct {
	mu    sync.Mutex
	used  map[string]struct{}
	paint uint64
}

// New creates an empty session.
func New() *Session {
	return &Session{used: make(map[string]struct{})}
}

// MarkUsed records an image URL as displayed on the board.
func (s *Session) MarkUsed(url string) {
	key := normalizeURL(url)
	if key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used[key] = struct{}{}
}

// Used reports whether the URL is already on the board.
func (s *Session) Used(url string) bool {
	key := normalizeURL(url)
	if key == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.used[key]
	return ok
}

// Reset clears the seen-URL set for a new round. Paint tokens keep
// advancing so renders from the old round stay stale.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used = make(map[string]struct{})
}

// NextPaint advances and returns the paint token for a new render pass.
func (s *Session) NextPaint() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paint++
	return s.paint
}

// Current returns the active paint token.
func (s *Session) Current() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paint
}

func normalizeURL(url string) string {
	return strings.ToLower(strings.TrimSpace(url))
}
