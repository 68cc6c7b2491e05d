package store

import (
	"sync"

	"github.com/annavogt-hci/ascend/internal/models"
)

// SessionStore manages in-memory session storage. It keeps the code->session
// map and an identity->code index so a participant's session resolves
// without scanning every room.
type SessionStore struct {
	sessions map[string]*models.Session
	byPlayer map[string]string // identity -> room code
	mu       sync.RWMutex
}

// NewSessionStore creates a new session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.Session),
		byPlayer: make(map[string]string),
	}
}

// Get retrieves a session by room code
func (s *SessionStore) Get(code string) (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, exists := s.sessions[code]
	return sess, exists
}

// Set stores a session and indexes its current participants
func (s *SessionStore) Set(code string, sess *models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[code] = sess
	for _, p := range sess.Players {
		s.byPlayer[p] = code
	}
}

// Delete removes a session and any index entries pointing at it
func (s *SessionStore) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, code)
	for p, c := range s.byPlayer {
		if c == code {
			delete(s.byPlayer, p)
		}
	}
}

// Exists checks if a room code is in use
func (s *SessionStore) Exists(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.sessions[code]
	return exists
}

// Index records that the identity belongs to the given room
func (s *SessionStore) Index(playerID, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byPlayer[playerID] = code
}

// Unindex drops the identity's room mapping
func (s *SessionStore) Unindex(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byPlayer, playerID)
}

// Resolve finds the session containing the identity
func (s *SessionStore) Resolve(playerID string) (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.byPlayer[playerID]
	if !ok {
		return nil, false
	}
	sess, exists := s.sessions[code]
	return sess, exists
}
