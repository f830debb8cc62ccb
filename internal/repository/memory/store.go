package memory

import (
	"context"
	"sync"
	"time"

	"github.com/amminlb/corporateai/internal/domain"
)

// Store is the in-memory session store. Sessions live for the process
// lifetime and are evicted when idle past the sweep threshold.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewStore creates an empty in-memory session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*domain.Session)}
}

// GetOrCreate returns a snapshot of the session for userID, creating it on
// first contact. The stored session's last-activity time is touched.
func (s *Store) GetOrCreate(_ context.Context, userID string) (*domain.Session, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &domain.Session{
			UserID:       userID,
			CreatedAt:    now,
			LastActivity: now,
		}
		s.sessions[userID] = sess
	}
	sess.LastActivity = now

	return sess.Clone(), nil
}

// Save writes a mutated session snapshot back into the store.
func (s *Store) Save(_ context.Context, session *domain.Session) error {
	session.LastActivity = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.UserID] = session.Clone()
	return nil
}

// SweepExpired removes every session idle longer than idleTTL and returns
// how many were evicted.
func (s *Store) SweepExpired(_ context.Context, now time.Time, idleTTL time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for userID, sess := range s.sessions {
		if now.Sub(sess.LastActivity) > idleTTL {
			delete(s.sessions, userID)
			evicted++
		}
	}
	return evicted, nil
}

// Size returns the count of live sessions.
func (s *Store) Size(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}

// List returns snapshots of all live sessions for the admin surface.
func (s *Store) List(_ context.Context) ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]*domain.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess.Clone())
	}
	return sessions, nil
}
