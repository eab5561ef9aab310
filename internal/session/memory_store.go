package session

import (
	"context"
	"sync"

	"github.com/Louis-BT/Student-Portal/internal/models"
)

// MemoryStore keeps sessions in an in-process map. All logins are lost
// on restart; that is the documented trade-off of this backend.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.Session)}
}

func (s *MemoryStore) Create(_ context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *MemoryStore) Resolve(_ context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	// copy so callers cannot mutate the stored value
	out := sess
	return &out, nil
}

func (s *MemoryStore) Revoke(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.Revoked = true
		s.sessions[id] = sess
	}
	return nil
}

func (s *MemoryStore) RevokeUser(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.UserID == userID {
			sess.Revoked = true
			s.sessions[id] = sess
		}
	}
	return nil
}
