package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	WhatsApp  WhatsAppConfig  `mapstructure:"whatsapp"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Session   SessionConfig   `mapstructure:"session"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Sqlite    SqliteConfig    `mapstructure:"sqlite"`
	Admin     AdminConfig     `mapstructure:"admin"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type WhatsAppConfig struct {
	Token         string `mapstructure:"token"`
	VerifyToken   string `mapstructure:"verify_token"`
	PhoneNumberID string `mapstructure:"phone_number_id"`
	APIBaseURL    string `mapstructure:"api_base_url"`
}

type LLMConfig struct {
	DefaultProvider string         `mapstructure:"default_provider"`
	OpenAI          OpenAIConfig   `mapstructure:"openai"`
	DeepSeek        DeepSeekConfig `mapstructure:"deepseek"`
	Ollama          OllamaConfig   `mapstructure:"ollama"`
	Gemini          GeminiConfig   `mapstructure:"gemini"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type DeepSeekConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OllamaConfig struct {
	Host         string `mapstructure:"host"`
	DefaultModel string `mapstructure:"default_model"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// SessionConfig tunes the conversation store and the topic classifier.
type SessionConfig struct {
	Store             string        `mapstructure:"store"`
	IdleTTL           time.Duration `mapstructure:"idle_ttl"`
	HistoryCap        int           `mapstructure:"history_cap"`
	SweepChance       float64       `mapstructure:"sweep_chance"`
	RecentWindow      int           `mapstructure:"recent_window"`
	ShortMessageLimit int           `mapstructure:"short_message_limit"`
	ContextSlice      int           `mapstructure:"context_slice"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type SqliteConfig struct {
	// Path to the transcript database; empty disables the transcript log.
	Path string `mapstructure:"path"`
}

type AdminConfig struct {
	Token string `mapstructure:"token"`
}

type RateLimitConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	PerMinute int  `mapstructure:"per_minute"`
	Burst     int  `mapstructure:"burst"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// WhatsApp
	v.SetDefault("whatsapp.api_base_url", "https://graph.facebook.com/v18.0")

	// LLM
	v.SetDefault("llm.default_provider", "openai")
	v.SetDefault("llm.openai.model", "gpt-4-turbo")
	v.SetDefault("llm.ollama.default_model", "llama3")

	// Session store and classifier tuning
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.idle_ttl", "30m")
	v.SetDefault("session.history_cap", 10)
	v.SetDefault("session.sweep_chance", 0.1)
	v.SetDefault("session.recent_window", 2)
	v.SetDefault("session.short_message_limit", 30)
	v.SetDefault("session.context_slice", 6)

	// Redis
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	// Rate limit
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.per_minute", 20)
	v.SetDefault("rate_limit.burst", 5)

	// Logging
	v.SetDefault("logging.level", "info")
}

func bindEnvVars(v *viper.Viper) {
	// WhatsApp
	v.BindEnv("whatsapp.token", "WHATSAPP_TOKEN")
	v.BindEnv("whatsapp.verify_token", "VERIFY_TOKEN")
	v.BindEnv("whatsapp.phone_number_id", "PHONE_NUMBER_ID")

	// LLM API keys
	v.BindEnv("llm.openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("llm.deepseek.api_key", "DEEPSEEK_API_KEY")
	v.BindEnv("llm.gemini.api_key", "GEMINI_API_KEY")
	v.BindEnv("llm.ollama.host", "OLLAMA_HOST")

	// Redis
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Admin
	v.BindEnv("admin.token", "ADMIN_TOKEN")
}
