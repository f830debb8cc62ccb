package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amminlb/corporateai/internal/api"
	"github.com/amminlb/corporateai/internal/api/handler"
	"github.com/amminlb/corporateai/internal/config"
	"github.com/amminlb/corporateai/internal/domain"
	"github.com/amminlb/corporateai/internal/repository/memory"
	"github.com/amminlb/corporateai/internal/repository/redis"
	"github.com/amminlb/corporateai/internal/repository/sqlite"
	"github.com/joho/godotenv"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			fmt.Printf("Loaded .env from: %s\n", p)
			break
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.Logging)

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("session_store", cfg.Session.Store).
		Msg("Starting CorporateAI WhatsApp bot")

	if cfg.WhatsApp.Token == "" || cfg.WhatsApp.PhoneNumberID == "" {
		log.Warn().Msg("WhatsApp credentials not set, outbound sends will fail")
	}

	var (
		store       domain.SessionStore
		redisClient *redis.Client
	)
	switch cfg.Session.Store {
	case "redis":
		redisClient, err = redis.NewClient(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		store = redis.NewSessionStore(redisClient, cfg.Session.IdleTTL)
	default:
		store = memory.NewStore()
	}

	var transcripts domain.TranscriptStore
	if cfg.Sqlite.Path != "" {
		ts, err := sqlite.Open(cfg.Sqlite.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Sqlite.Path).Msg("Failed to open transcript database")
		}
		defer ts.Close()
		transcripts = ts
	}

	var limiter handler.Limiter
	if cfg.RateLimit.Enabled {
		if redisClient == nil {
			redisClient, err = redis.NewClient(cfg.Redis)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to connect to Redis for rate limiting")
			}
			defer redisClient.Close()
		}
		limiter = redis.NewRateLimiter(redisClient, cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
	}

	router := api.NewRouter(cfg, store, transcripts, limiter)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func setupLogger(cfg config.LoggingConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var sinks []io.Writer
	if os.Getenv("ENV") != "production" {
		sinks = append(sinks, zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		sinks = append(sinks, os.Stderr)
	}

	if cfg.File != "" {
		writer, err := rotatelogs.New(
			cfg.File+".%Y%m%d",
			rotatelogs.WithLinkName(cfg.File),
			rotatelogs.WithRotationTime(24*time.Hour),
			rotatelogs.WithMaxAge(7*24*time.Hour),
		)
		if err != nil {
			log.Warn().Err(err).Str("file", cfg.File).Msg("failed to open log file, logging to stderr only")
		} else {
			sinks = append(sinks, writer)
		}
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(sinks...))
}
