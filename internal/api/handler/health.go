package handler

import (
	"net/http"
	"time"

	"github.com/amminlb/corporateai/internal/api/response"
	"github.com/amminlb/corporateai/internal/domain"
)

// HealthCheck reports service health and the live conversation count.
func HealthCheck(store domain.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		size, err := store.Size(r.Context())
		if err != nil {
			response.InternalError(w, "session store unavailable")
			return
		}

		response.OK(w, map[string]any{
			"status":               "healthy",
			"service":              "CorporateAI WhatsApp Bot",
			"timestamp":            time.Now().UTC().Format(time.RFC3339),
			"active_conversations": size,
		})
	}
}
