package domain

import (
	"context"
	"time"
)

// Session holds the in-memory conversational state for one WhatsApp user.
// The user's phone number is the identity; everything else is derived from
// the messages that flowed through the conversation.
type Session struct {
	UserID               string    `json:"user_id"`
	Messages             []Message `json:"messages"`
	IsInsuranceContext   bool      `json:"is_insurance_context"`
	Topics               []string  `json:"topics,omitempty"`
	LastInsuranceMessage string    `json:"last_insurance_message,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	LastActivity         time.Time `json:"last_activity"`
}

// Append pushes an entry onto the history, dropping the oldest entries
// once the window exceeds limit.
func (s *Session) Append(msg Message, limit int) {
	s.Messages = append(s.Messages, msg)
	if limit > 0 && len(s.Messages) > limit {
		s.Messages = s.Messages[len(s.Messages)-limit:]
	}
}

// Recent returns the last n entries oldest-first without mutating history.
func (s *Session) Recent(n int) []Message {
	if n <= 0 || len(s.Messages) == 0 {
		return nil
	}
	if n > len(s.Messages) {
		n = len(s.Messages)
	}
	return s.Messages[len(s.Messages)-n:]
}

// AddTopic records an observed insurance topic, de-duplicated.
func (s *Session) AddTopic(topic string) {
	for _, t := range s.Topics {
		if t == topic {
			return
		}
	}
	s.Topics = append(s.Topics, topic)
}

// Clone returns a deep copy safe to hand across goroutines.
func (s *Session) Clone() *Session {
	c := *s
	c.Messages = append([]Message(nil), s.Messages...)
	c.Topics = append([]string(nil), s.Topics...)
	return &c
}

// SessionStore defines the interface for conversation state storage.
// GetOrCreate returns a snapshot of the session, touching its last-activity
// time; mutations are written back with Save. Implementations must make
// get-or-create atomic with respect to concurrent lookups and sweeps.
type SessionStore interface {
	GetOrCreate(ctx context.Context, userID string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	SweepExpired(ctx context.Context, now time.Time, idleTTL time.Duration) (int, error)
	Size(ctx context.Context) (int, error)
	List(ctx context.Context) ([]*Session, error)
}

// TranscriptDirection marks which way a transcript entry flowed.
type TranscriptDirection string

const (
	DirectionInbound  TranscriptDirection = "inbound"
	DirectionOutbound TranscriptDirection = "outbound"
)

// TranscriptEntry is one durable row of the message audit log.
type TranscriptEntry struct {
	UserID    string              `json:"user_id"`
	Direction TranscriptDirection `json:"direction"`
	Body      string              `json:"body"`
	Admitted  bool                `json:"admitted"`
	Delivered bool                `json:"delivered"`
	CreatedAt time.Time           `json:"created_at"`
}

// TranscriptStore defines the interface for the durable message log
type TranscriptStore interface {
	Record(ctx context.Context, entry TranscriptEntry) error
	RecentByUser(ctx context.Context, userID string, limit int) ([]TranscriptEntry, error)
}
