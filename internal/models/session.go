package models

import "sync"

// Session is one active two-participant game room
type Session struct {
	Code    string
	Players []string   // participant identities, index 0 is player 1
	State   *GameState // nil until the first round is dealt
	mu      sync.Mutex
}

// Lock acquires the session's lock. Every engine operation holds it for
// the operation's full duration so events for one session never interleave.
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock releases the session's lock
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// HasPlayer reports whether the identity is a participant (must be called with lock held)
func (s *Session) HasPlayer(id string) bool {
	for _, p := range s.Players {
		if p == id {
			return true
		}
	}
	return false
}

// Opponent returns the other participant's identity (must be called with lock held)
func (s *Session) Opponent(id string) (string, bool) {
	for _, p := range s.Players {
		if p != id {
			return p, true
		}
	}
	return "", false
}

// RemovePlayer drops the identity from the participant list (must be called with lock held)
func (s *Session) RemovePlayer(id string) {
	for i, p := range s.Players {
		if p == id {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			return
		}
	}
}
