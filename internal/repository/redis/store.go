package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amminlb/corporateai/internal/domain"
	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"

// SessionStore keeps conversation sessions in Redis as JSON values with a
// TTL equal to the idle threshold, so expiry replaces the explicit sweep.
type SessionStore struct {
	client  *Client
	idleTTL time.Duration
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client *Client, idleTTL time.Duration) *SessionStore {
	return &SessionStore{client: client, idleTTL: idleTTL}
}

func sessionKey(userID string) string {
	return sessionPrefix + userID
}

// GetOrCreate returns the session for userID, creating it on first contact.
// Reading a session refreshes its TTL, mirroring the last-activity touch.
func (s *SessionStore) GetOrCreate(ctx context.Context, userID string) (*domain.Session, error) {
	now := time.Now()
	key := sessionKey(userID)

	data, err := s.client.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		sess := &domain.Session{
			UserID:       userID,
			CreatedAt:    now,
			LastActivity: now,
		}
		if err := s.Save(ctx, sess); err != nil {
			return nil, err
		}
		return sess, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	sess.LastActivity = now
	if err := s.Save(ctx, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Save writes the session back with a refreshed TTL.
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	session.LastActivity = time.Now()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.rdb.Set(ctx, sessionKey(session.UserID), data, s.idleTTL).Err(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// SweepExpired is a no-op: Redis key TTLs enforce the idle threshold.
func (s *SessionStore) SweepExpired(ctx context.Context, now time.Time, idleTTL time.Duration) (int, error) {
	return 0, nil
}

// Size counts live sessions.
func (s *SessionStore) Size(ctx context.Context) (int, error) {
	keys, err := s.scanKeys(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// List returns all live sessions for the admin surface.
func (s *SessionStore) List(ctx context.Context) ([]*domain.Session, error) {
	keys, err := s.scanKeys(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := s.client.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}

	sessions := make([]*domain.Session, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue // expired between scan and read
		}
		var sess domain.Session
		if err := json.Unmarshal([]byte(raw), &sess); err != nil {
			continue
		}
		sessions = append(sessions, &sess)
	}
	return sessions, nil
}

func (s *SessionStore) scanKeys(ctx context.Context) ([]string, error) {
	var cursor uint64
	var keys []string
	for {
		batch, next, err := s.client.rdb.Scan(ctx, cursor, sessionPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan sessions: %w", err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}
