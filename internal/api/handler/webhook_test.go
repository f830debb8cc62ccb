package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amminlb/corporateai/internal/api/handler"
	"github.com/amminlb/corporateai/internal/bot"
	"github.com/amminlb/corporateai/internal/classify"
	"github.com/amminlb/corporateai/internal/config"
	"github.com/amminlb/corporateai/internal/llm"
	"github.com/amminlb/corporateai/internal/repository/memory"
	"github.com/stretchr/testify/assert"
)

type channelSender struct {
	sent chan string
}

func (s *channelSender) SendText(ctx context.Context, to, body string) error {
	s.sent <- body
	return nil
}

type denyLimiter struct{}

func (denyLimiter) Allow(ctx context.Context, sender string) (bool, error) {
	return false, nil
}

func newTestService(sender bot.Sender) *bot.Service {
	cfg := config.SessionConfig{
		IdleTTL:           30 * time.Minute,
		HistoryCap:        10,
		SweepChance:       0,
		RecentWindow:      2,
		ShortMessageLimit: 30,
		ContextSlice:      6,
	}
	classifier := classify.New(classify.DefaultConfig())
	return bot.NewService(memory.NewStore(), nil, classifier, llm.NewRouter("openai"), sender, cfg)
}

const samplePayload = `{
	"object": "whatsapp_business_account",
	"entry": [{
		"id": "entry-1",
		"changes": [{
			"field": "messages",
			"value": {
				"messaging_product": "whatsapp",
				"messages": [{
					"from": "96170123456",
					"id": "wamid.1",
					"timestamp": "1700000000",
					"type": "text",
					"text": {"body": "I need car insurance"}
				}]
			}
		}]
	}]
}`

func TestVerifyWebhookAcceptsMatchingToken(t *testing.T) {
	h := handler.VerifyWebhook("secret-token")

	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12345", rec.Body.String())
}

func TestVerifyWebhookRejectsWrongToken(t *testing.T) {
	h := handler.VerifyWebhook("secret-token")

	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "12345")
}

func TestVerifyWebhookRejectsMissingMode(t *testing.T) {
	h := handler.VerifyWebhook("secret-token")

	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.verify_token=secret-token&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestReceiveWebhookAcknowledgesMalformedBody(t *testing.T) {
	sender := &channelSender{sent: make(chan string, 1)}
	h := handler.ReceiveWebhook(newTestService(sender), nil)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ignored")
	select {
	case body := <-sender.sent:
		t.Fatalf("no message should be processed, got reply %q", body)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestReceiveWebhookDispatchesMessage(t *testing.T) {
	sender := &channelSender{sent: make(chan string, 1)}
	h := handler.ReceiveWebhook(newTestService(sender), nil)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(samplePayload))
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "received")

	select {
	case body := <-sender.sent:
		assert.NotEmpty(t, body)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a reply to be sent")
	}
}

func TestReceiveWebhookDropsRateLimitedSender(t *testing.T) {
	sender := &channelSender{sent: make(chan string, 1)}
	h := handler.ReceiveWebhook(newTestService(sender), denyLimiter{})

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(samplePayload))
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	select {
	case body := <-sender.sent:
		t.Fatalf("rate limited message should be dropped, got reply %q", body)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestReceiveWebhookIgnoresForeignObject(t *testing.T) {
	sender := &channelSender{sent: make(chan string, 1)}
	h := handler.ReceiveWebhook(newTestService(sender), nil)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"object": "instagram", "entry": []}`))
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	select {
	case body := <-sender.sent:
		t.Fatalf("foreign payload should not be processed, got reply %q", body)
	case <-time.After(100 * time.Millisecond):
	}
}
