package handler

import (
	"net/http"
	"unicode/utf8"

	"github.com/amminlb/corporateai/internal/api/response"
	"github.com/amminlb/corporateai/internal/domain"
	"github.com/go-chi/chi/v5"
)

const snippetLimit = 80

type sessionSummary struct {
	UserID             string   `json:"user_id"`
	FirstContact       string   `json:"first_contact"`
	LastSeen           string   `json:"last_seen"`
	MessageCount       int      `json:"message_count"`
	Topics             []string `json:"topics,omitempty"`
	LastMessage        string   `json:"last_message,omitempty"`
	IsInsuranceContext bool     `json:"is_insurance_context"`
}

func summarize(sess *domain.Session) sessionSummary {
	summary := sessionSummary{
		UserID:             sess.UserID,
		FirstContact:       sess.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		LastSeen:           sess.LastActivity.UTC().Format("2006-01-02T15:04:05Z"),
		MessageCount:       len(sess.Messages),
		Topics:             sess.Topics,
		IsInsuranceContext: sess.IsInsuranceContext,
	}
	if len(sess.Messages) > 0 {
		summary.LastMessage = snippet(sess.Messages[len(sess.Messages)-1].Content)
	}
	return summary
}

func snippet(s string) string {
	if utf8.RuneCountInString(s) <= snippetLimit {
		return s
	}
	runes := []rune(s)
	return string(runes[:snippetLimit]) + "..."
}

// ListSessions returns a summary of every live conversation.
func ListSessions(store domain.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := store.List(r.Context())
		if err != nil {
			response.InternalError(w, "failed to list sessions")
			return
		}

		summaries := make([]sessionSummary, 0, len(sessions))
		for _, sess := range sessions {
			summaries = append(summaries, summarize(sess))
		}
		response.OK(w, map[string]any{"sessions": summaries, "count": len(summaries)})
	}
}

type debugConversation struct {
	sessionSummary
	Recent []domain.Message `json:"recent"`
}

// DebugConversations returns session summaries plus the trailing history
// entries, for troubleshooting. Read-only.
func DebugConversations(store domain.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := store.List(r.Context())
		if err != nil {
			response.InternalError(w, "failed to list sessions")
			return
		}

		conversations := make([]debugConversation, 0, len(sessions))
		for _, sess := range sessions {
			conversations = append(conversations, debugConversation{
				sessionSummary: summarize(sess),
				Recent:         sess.Recent(3),
			})
		}
		response.OK(w, map[string]any{"conversations": conversations})
	}
}

// UserTranscript returns the durable message log for one user.
func UserTranscript(transcripts domain.TranscriptStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if transcripts == nil {
			response.NotFound(w, "transcript log disabled")
			return
		}

		userID := chi.URLParam(r, "userID")
		entries, err := transcripts.RecentByUser(r.Context(), userID, 50)
		if err != nil {
			response.InternalError(w, "failed to read transcript")
			return
		}
		response.OK(w, map[string]any{"user_id": userID, "entries": entries})
	}
}
