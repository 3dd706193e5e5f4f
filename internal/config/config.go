package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the configuration for the application.
type Config struct {
	// LLM settings. Provider selects which client generates plan text.
	LLMProvider  string // "groq" or "gemini"
	GroqAPIKey   string
	GeminiAPIKey string

	// Storage
	DatabasePath string

	// Costing
	FallbackPrice string // decimal string, e.g. "2.50"

	// Telegram (optional for the CLI, required for the bot)
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowUserID int64
	AdminTelegramID     int64

	// Planning defaults
	DefaultDays int
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "groq"
	}
	if provider != "groq" && provider != "gemini" {
		return nil, fmt.Errorf("LLM_PROVIDER must be \"groq\" or \"gemini\", got %q", provider)
	}

	groqAPIKey := os.Getenv("GROQ_API_KEY")
	if provider == "groq" && groqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if provider == "gemini" && geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "data/ovona.db"
	}

	fallbackPrice := os.Getenv("FALLBACK_PRICE")
	if fallbackPrice == "" {
		fallbackPrice = "2.50"
	}

	defaultDays := 5
	if daysStr := os.Getenv("DEFAULT_PLAN_DAYS"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days < 1 || days > 7 {
			return nil, fmt.Errorf("DEFAULT_PLAN_DAYS must be an integer between 1 and 7, got %q", daysStr)
		}
		defaultDays = days
	}

	return &Config{
		LLMProvider:         provider,
		GroqAPIKey:          groqAPIKey,
		GeminiAPIKey:        geminiAPIKey,
		DatabasePath:        dbPath,
		FallbackPrice:       fallbackPrice,
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:  os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowUserID: parseInt64(os.Getenv("TELEGRAM_ALLOW_USER_ID")),
		AdminTelegramID:     parseInt64(os.Getenv("ADMIN_TELEGRAM_ID")),
		DefaultDays:         defaultDays,
	}, nil
}

func parseInt64(s string) int64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
