package api

import (
	"net/http"

	"github.com/amminlb/corporateai/internal/api/handler"
	custommw "github.com/amminlb/corporateai/internal/api/middleware"
	"github.com/amminlb/corporateai/internal/bot"
	"github.com/amminlb/corporateai/internal/classify"
	"github.com/amminlb/corporateai/internal/config"
	"github.com/amminlb/corporateai/internal/domain"
	"github.com/amminlb/corporateai/internal/llm"
	"github.com/amminlb/corporateai/internal/llm/deepseek"
	"github.com/amminlb/corporateai/internal/llm/gemini"
	"github.com/amminlb/corporateai/internal/llm/ollama"
	"github.com/amminlb/corporateai/internal/llm/openai"
	"github.com/amminlb/corporateai/internal/whatsapp"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// NewRouter wires the webhook, health, and admin surfaces over the given
// session store. transcripts and limiter may be nil when those features are
// disabled.
func NewRouter(cfg *config.Config, store domain.SessionStore, transcripts domain.TranscriptStore, limiter handler.Limiter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommw.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	llmRouter := newLLMRouter(cfg.LLM)

	sender := whatsapp.NewClient(cfg.WhatsApp.Token, cfg.WhatsApp.PhoneNumberID, cfg.WhatsApp.APIBaseURL)
	classifier := classify.New(classify.Config{
		RecentWindow:      cfg.Session.RecentWindow,
		ShortMessageLimit: cfg.Session.ShortMessageLimit,
	})
	svc := bot.NewService(store, transcripts, classifier, llmRouter, sender, cfg.Session)

	r.Get("/health", handler.HealthCheck(store))

	r.Get("/webhook", handler.VerifyWebhook(cfg.WhatsApp.VerifyToken))
	r.Post("/webhook", handler.ReceiveWebhook(svc, limiter))

	r.Route("/admin", func(r chi.Router) {
		r.Use(custommw.AdminAuth(cfg.Admin.Token))
		r.Get("/sessions", handler.ListSessions(store))
		r.Get("/debug/conversations", handler.DebugConversations(store))
		r.Get("/transcripts/{userID}", handler.UserTranscript(transcripts))
	})

	return r
}

func newLLMRouter(cfg config.LLMConfig) *llm.Router {
	llmRouter := llm.NewRouter(cfg.DefaultProvider)
	log.Info().Str("default", cfg.DefaultProvider).Msg("initializing completion providers")

	if cfg.OpenAI.APIKey != "" {
		llmRouter.RegisterProvider(openai.NewProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model))
	}
	if cfg.DeepSeek.APIKey != "" {
		llmRouter.RegisterProvider(deepseek.NewProvider(cfg.DeepSeek.APIKey, cfg.DeepSeek.Model))
	}
	if cfg.Ollama.Host != "" {
		log.Info().Str("host", cfg.Ollama.Host).Msg("registering ollama provider")
		llmRouter.RegisterProvider(ollama.NewProvider(cfg.Ollama.Host, cfg.Ollama.DefaultModel))
	}
	if cfg.Gemini.APIKey != "" {
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.Gemini.APIKey, cfg.Gemini.Model))
	}

	if len(llmRouter.ListProviders()) == 0 {
		log.Warn().Msg("no completion provider configured, replies will use canned fallbacks")
	}
	return llmRouter
}
