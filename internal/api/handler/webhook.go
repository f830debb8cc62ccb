package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/amminlb/corporateai/internal/api/response"
	"github.com/amminlb/corporateai/internal/bot"
	"github.com/amminlb/corporateai/internal/whatsapp"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// Limiter bounds how many messages a single sender may deliver; over-limit
// messages are acknowledged but dropped.
type Limiter interface {
	Allow(ctx context.Context, sender string) (bool, error)
}

// handleTimeout bounds one inbound message's processing, including the
// completion and messaging provider calls.
const handleTimeout = 2 * time.Minute

// VerifyWebhook answers Meta's GET subscription handshake. The challenge
// must be echoed back as plain text.
func VerifyWebhook(verifyToken string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := r.URL.Query().Get("hub.mode")
		token := r.URL.Query().Get("hub.verify_token")
		challenge := r.URL.Query().Get("hub.challenge")

		if mode == "subscribe" && token == verifyToken {
			log.Info().Msg("webhook verified")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(challenge))
			return
		}

		http.Error(w, "Verification failed", http.StatusForbidden)
	}
}

// ReceiveWebhook accepts inbound message deliveries. Each message is
// dispatched on its own goroutine so one user's completion call never
// blocks another's, and the webhook is acknowledged immediately. Malformed
// payloads are acknowledged without processing so the provider does not
// retry-storm.
func ReceiveWebhook(svc *bot.Service, limiter Limiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload whatsapp.Payload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			log.Warn().Err(err).Msg("malformed webhook payload")
			response.OK(w, map[string]string{"status": "ignored"})
			return
		}

		for _, msg := range payload.InboundMessages() {
			if err := validate.Struct(msg); err != nil {
				log.Warn().Err(err).Msg("webhook message missing required fields")
				continue
			}

			if limiter != nil {
				allowed, err := limiter.Allow(r.Context(), msg.From)
				if err != nil {
					log.Warn().Err(err).Msg("rate limit check failed, allowing message")
				} else if !allowed {
					log.Info().Str("from", msg.From).Msg("sender over rate limit, dropping message")
					continue
				}
			}

			m := msg
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
				defer cancel()
				if err := svc.HandleIncoming(ctx, m); err != nil {
					log.Error().Err(err).Str("from", m.From).Msg("failed to handle message")
				}
			}()
		}

		response.OK(w, map[string]string{"status": "received"})
	}
}
