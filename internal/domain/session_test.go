package domain_test

import (
	"testing"
	"time"

	"github.com/amminlb/corporateai/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSession_AppendCapsHistory(t *testing.T) {
	s := &domain.Session{UserID: "96170000000"}

	var first domain.Message
	for i := 0; i < 11; i++ {
		msg := domain.NewMessage(domain.RoleUser, string(rune('a'+i)))
		if i == 0 {
			first = msg
		}
		s.Append(msg, 10)
	}

	assert.Len(t, s.Messages, 10)
	// The dropped entry is the oldest one.
	for _, m := range s.Messages {
		assert.NotEqual(t, first.ID, m.ID)
	}
	assert.Equal(t, "b", s.Messages[0].Content)
	assert.Equal(t, "k", s.Messages[9].Content)
}

func TestSession_AppendKeepsTimestampOrder(t *testing.T) {
	s := &domain.Session{}
	for i := 0; i < 5; i++ {
		s.Append(domain.NewMessage(domain.RoleUser, "m"), 10)
	}
	for i := 1; i < len(s.Messages); i++ {
		assert.False(t, s.Messages[i].Timestamp.Before(s.Messages[i-1].Timestamp))
	}
}

func TestSession_Recent(t *testing.T) {
	s := &domain.Session{}
	for _, content := range []string{"one", "two", "three"} {
		s.Append(domain.NewMessage(domain.RoleUser, content), 10)
	}

	recent := s.Recent(2)
	assert.Len(t, recent, 2)
	assert.Equal(t, "two", recent[0].Content)
	assert.Equal(t, "three", recent[1].Content)

	// Asking for more than exists returns everything, oldest first.
	assert.Len(t, s.Recent(10), 3)
	assert.Nil(t, s.Recent(0))

	// Repeated reads never mutate history.
	for i := 0; i < 3; i++ {
		s.Recent(2)
	}
	assert.Len(t, s.Messages, 3)
	assert.Equal(t, "one", s.Messages[0].Content)
}

func TestSession_AddTopic(t *testing.T) {
	s := &domain.Session{}
	s.AddTopic("car")
	s.AddTopic("insurance")
	s.AddTopic("car")
	assert.Equal(t, []string{"car", "insurance"}, s.Topics)
}

func TestSession_Clone(t *testing.T) {
	s := &domain.Session{
		UserID:       "96170000000",
		LastActivity: time.Now(),
	}
	s.Append(domain.NewMessage(domain.RoleUser, "original"), 10)

	c := s.Clone()
	c.Append(domain.NewMessage(domain.RoleAssistant, "added to clone"), 10)
	c.AddTopic("car")

	assert.Len(t, s.Messages, 1)
	assert.Empty(t, s.Topics)
	assert.Len(t, c.Messages, 2)
}
