package bot

import (
	"context"
	"errors"
	"time"

	"github.com/amminlb/corporateai/internal/domain"
	"github.com/amminlb/corporateai/internal/llm"
	"github.com/amminlb/corporateai/internal/repository/memory"
	"github.com/stretchr/testify/mock"
)

// MockSender records outbound messages and can be scripted to fail.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendText(ctx context.Context, to, body string) error {
	args := m.Called(ctx, to, body)
	return args.Error(0)
}

// MockTranscripts records transcript writes.
type MockTranscripts struct {
	mock.Mock
}

func (m *MockTranscripts) Record(ctx context.Context, entry domain.TranscriptEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTranscripts) RecentByUser(ctx context.Context, userID string, limit int) ([]domain.TranscriptEntry, error) {
	args := m.Called(ctx, userID, limit)
	if v := args.Get(0); v != nil {
		return v.([]domain.TranscriptEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

// stubProvider is a scriptable completion provider.
type stubProvider struct {
	reply    string
	err      error
	lastReq  llm.Request
	numCalls int
}

func (p *stubProvider) Name() string              { return "stub" }
func (p *stubProvider) AvailableModels() []string { return []string{"stub-1"} }
func (p *stubProvider) DefaultModel() string      { return "stub-1" }
func (p *stubProvider) IsConfigured() bool        { return true }

func (p *stubProvider) Complete(ctx context.Context, req llm.Request, model string) (*llm.Response, error) {
	p.numCalls++
	p.lastReq = req
	if p.err != nil {
		return nil, p.err
	}
	return &llm.Response{Text: p.reply, Model: "stub-1"}, nil
}

// sweepCountingStore wraps the memory store to observe sweep calls.
type sweepCountingStore struct {
	*memory.Store
	sweeps int
}

func (s *sweepCountingStore) SweepExpired(ctx context.Context, now time.Time, idleTTL time.Duration) (int, error) {
	s.sweeps++
	return s.Store.SweepExpired(ctx, now, idleTTL)
}

var errSendFailed = errors.New("send failed")
