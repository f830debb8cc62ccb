package bot

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/amminlb/corporateai/internal/classify"
	"github.com/amminlb/corporateai/internal/config"
	"github.com/amminlb/corporateai/internal/domain"
	"github.com/amminlb/corporateai/internal/llm"
	"github.com/amminlb/corporateai/internal/whatsapp"
	"github.com/rs/zerolog/log"
)

// Sender delivers outbound messages to the user. Failures are not retried.
type Sender interface {
	SendText(ctx context.Context, to, body string) error
}

// Service orchestrates one inbound message end to end: session touch,
// admission, special intents, completion, reply.
type Service struct {
	store       domain.SessionStore
	transcripts domain.TranscriptStore
	classifier  *classify.Classifier
	llmRouter   *llm.Router
	sender      Sender
	cfg         config.SessionConfig

	// userLocks serializes handling per sender so a rapid double-send
	// cannot interleave between session read and write-back.
	userLocks sync.Map

	// sweepRoll is swapped in tests to force or suppress sweeps.
	sweepRoll func() float64
}

// NewService creates the message orchestrator. transcripts may be nil when
// the durable log is disabled.
func NewService(
	store domain.SessionStore,
	transcripts domain.TranscriptStore,
	classifier *classify.Classifier,
	llmRouter *llm.Router,
	sender Sender,
	cfg config.SessionConfig,
) *Service {
	return &Service{
		store:       store,
		transcripts: transcripts,
		classifier:  classifier,
		llmRouter:   llmRouter,
		sender:      sender,
		cfg:         cfg,
		sweepRoll:   rand.Float64,
	}
}

// HandleIncoming processes one inbound WhatsApp message.
func (s *Service) HandleIncoming(ctx context.Context, msg whatsapp.Message) error {
	unlock := s.lockUser(msg.From)
	defer unlock()

	// Cleanup is amortized across traffic instead of a background timer;
	// stale sessions only cost memory, never correctness.
	if s.sweepRoll() < s.cfg.SweepChance {
		if evicted, err := s.store.SweepExpired(ctx, time.Now(), s.cfg.IdleTTL); err != nil {
			log.Warn().Err(err).Msg("session sweep failed")
		} else if evicted > 0 {
			log.Debug().Int("evicted", evicted).Msg("swept idle sessions")
		}
	}

	sess, err := s.store.GetOrCreate(ctx, msg.From)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if msg.Type != whatsapp.TypeText {
		// Non-text messages get the fixed notice but leave history and the
		// context flag untouched.
		log.Info().Str("from", msg.From).Str("type", msg.Type).Msg("non-text message received")
		s.record(ctx, msg.From, domain.DirectionInbound, "["+msg.Type+"]", false, true)
		if err := s.sender.SendText(ctx, msg.From, TextOnlyNotice); err != nil {
			s.record(ctx, msg.From, domain.DirectionOutbound, TextOnlyNotice, false, false)
			return fmt.Errorf("failed to send text-only notice: %w", err)
		}
		s.record(ctx, msg.From, domain.DirectionOutbound, TextOnlyNotice, false, true)
		return nil
	}

	text := msg.Body()
	log.Info().Str("from", msg.From).Int("history", len(sess.Messages)).Msg("message received")

	sess.Append(domain.NewMessage(domain.RoleUser, text), s.cfg.HistoryCap)

	admitted := s.classifier.IsAdmitted(text, sess)
	s.record(ctx, msg.From, domain.DirectionInbound, text, admitted, true)

	if !admitted {
		sess.IsInsuranceContext = false
		return s.reply(ctx, sess, OutOfDomainReply, false)
	}

	sess.IsInsuranceContext = true
	sess.LastInsuranceMessage = text
	for _, topic := range classify.InsuranceTopics(text) {
		sess.AddTopic(topic)
	}

	if answer, ok := SpecialAnswer(text); ok {
		return s.reply(ctx, sess, answer, true)
	}

	return s.reply(ctx, sess, s.completionReply(ctx, sess), true)
}

// completionReply asks the configured provider for an answer over the
// trailing context slice. Any failure degrades to a canned fallback so the
// user is never left without a response once admitted.
func (s *Service) completionReply(ctx context.Context, sess *domain.Session) string {
	provider, err := s.llmRouter.GetProvider("")
	if err != nil {
		log.Warn().Err(err).Msg("no completion provider available")
		return fallbackReply()
	}

	recent := sess.Recent(s.cfg.ContextSlice)
	turns := make([]llm.Turn, 0, len(recent))
	for _, m := range recent {
		turns = append(turns, llm.Turn{Role: llm.TurnRole(m.Role), Content: m.Content})
	}

	resp, err := provider.Complete(ctx, llm.Request{System: llm.SystemInstruction, Turns: turns}, "")
	if err != nil {
		log.Error().Err(err).Str("provider", provider.Name()).Msg("completion failed")
		return fallbackReply()
	}

	log.Debug().
		Str("provider", provider.Name()).
		Str("model", resp.Model).
		Int("tokens_used", resp.TokensUsed).
		Int64("latency_ms", resp.LatencyMs).
		Msg("completion received")
	return resp.Text
}

// reply sends body to the session's user and writes the session back. The
// assistant entry is appended only after a successful send: a reply the
// user never saw must not become context.
func (s *Service) reply(ctx context.Context, sess *domain.Session, body string, admitted bool) error {
	sendErr := s.sender.SendText(ctx, sess.UserID, body)
	if sendErr == nil {
		sess.Append(domain.NewMessage(domain.RoleAssistant, body), s.cfg.HistoryCap)
	}
	s.record(ctx, sess.UserID, domain.DirectionOutbound, body, admitted, sendErr == nil)

	if err := s.store.Save(ctx, sess); err != nil {
		log.Error().Err(err).Str("user", sess.UserID).Msg("failed to save session")
	}
	if sendErr != nil {
		return fmt.Errorf("failed to send reply: %w", sendErr)
	}
	return nil
}

func (s *Service) record(ctx context.Context, userID string, direction domain.TranscriptDirection, body string, admitted, delivered bool) {
	if s.transcripts == nil {
		return
	}
	entry := domain.TranscriptEntry{
		UserID:    userID,
		Direction: direction,
		Body:      body,
		Admitted:  admitted,
		Delivered: delivered,
	}
	if err := s.transcripts.Record(ctx, entry); err != nil {
		log.Warn().Err(err).Msg("failed to record transcript entry")
	}
}

func (s *Service) lockUser(userID string) func() {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func fallbackReply() string {
	return FallbackReplies[rand.Intn(len(FallbackReplies))]
}
