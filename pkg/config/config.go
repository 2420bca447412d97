package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/logger"
	"github.com/joho/godotenv"
)

// Config system common config
type Config struct {
	ServerName string `env:"SERVER_NAME"`
	Addr       string `env:"ADDR"`
	Mode       string `env:"MODE"`
	APIPrefix  string `env:"API_PREFIX"`

	DBDriver string `env:"DB_DRIVER"`
	DSN      string `env:"DSN"`

	Log logger.LogConfig

	// LLM provider configuration. Provider may be "openai", "groq" or
	// "ollama"; groq and ollama are both OpenAI-compatible endpoints.
	LLMProvider   string `env:"LLM_PROVIDER"`
	LLMApiKey     string `env:"LLM_API_KEY"`
	LLMBaseURL    string `env:"LLM_BASE_URL"`
	LLMModel      string `env:"LLM_MODEL"`
	LLMTimeoutSec int    `env:"LLM_TIMEOUT_SEC"`
	LLMMaxRetries int    `env:"LLM_MAX_RETRIES"`
	UseLLM        bool   `env:"USE_LLM"`

	// TTS proxy upstream
	TTSURL string `env:"TTS_URL"`

	// External integration hooks
	BookingWebhookURL string `env:"BOOKING_WEBHOOK_URL"`
	PeerWebhookURL    string `env:"PEER_WEBHOOK_URL"`

	// Sessions idle longer than this are force-ended by the sweeper
	SessionIdleMinutes int `env:"SESSION_IDLE_MINUTES"`

	RateLimit string `env:"RATE_LIMIT"`
}

var GlobalConfig *Config

// Load reads .env (optional) and populates GlobalConfig with defaults so the
// service starts even with an empty environment.
func Load() error {
	env := os.Getenv("APP_ENV")
	if err := loadEnvFile(env); err != nil {
		log.Printf("Note: .env file not found or failed to load: %v (using default values)", err)
	}

	GlobalConfig = &Config{
		ServerName: getStringOrDefault("SERVER_NAME", "voice-assistant"),
		Addr:       getStringOrDefault("ADDR", ":7071"),
		Mode:       getStringOrDefault("MODE", "development"),
		APIPrefix:  getStringOrDefault("API_PREFIX", "/api"),
		DBDriver:   getStringOrDefault("DB_DRIVER", "sqlite"),
		DSN:        getStringOrDefault("DSN", "./assistant.db"),
		Log: logger.LogConfig{
			Level:      getStringOrDefault("LOG_LEVEL", "info"),
			Filename:   getStringOrDefault("LOG_FILENAME", "./logs/app.log"),
			MaxSize:    getIntOrDefault("LOG_MAX_SIZE", 100),
			MaxAge:     getIntOrDefault("LOG_MAX_AGE", 30),
			MaxBackups: getIntOrDefault("LOG_MAX_BACKUPS", 5),
			Daily:      getBoolOrDefault("LOG_DAILY", true),
		},
		LLMProvider:        getStringOrDefault("LLM_PROVIDER", "groq"),
		LLMApiKey:          getStringOrDefault("LLM_API_KEY", ""),
		LLMBaseURL:         getStringOrDefault("LLM_BASE_URL", ""),
		LLMModel:           getStringOrDefault("LLM_MODEL", "llama-3.1-8b-instant"),
		LLMTimeoutSec:      getIntOrDefault("LLM_TIMEOUT_SEC", 20),
		LLMMaxRetries:      getIntOrDefault("LLM_MAX_RETRIES", 2),
		UseLLM:             getBoolOrDefault("USE_LLM", true),
		TTSURL:             getStringOrDefault("TTS_URL", "http://127.0.0.1:5002"),
		BookingWebhookURL:  getStringOrDefault("BOOKING_WEBHOOK_URL", ""),
		PeerWebhookURL:     getStringOrDefault("PEER_WEBHOOK_URL", ""),
		SessionIdleMinutes: getIntOrDefault("SESSION_IDLE_MINUTES", 30),
		RateLimit:          getStringOrDefault("RATE_LIMIT", "1000-M"),
	}
	return nil
}

// SessionIdleTimeout idle window after which the sweeper finalizes a session
func (c *Config) SessionIdleTimeout() time.Duration {
	return time.Duration(c.SessionIdleMinutes) * time.Minute
}

func loadEnvFile(env string) error {
	if env != "" {
		if err := godotenv.Load(".env." + env); err == nil {
			return nil
		}
	}
	return godotenv.Load()
}

func getStringOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBoolOrDefault(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		return v == "1" || v == "yes"
	}
	return def
}
