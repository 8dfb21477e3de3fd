// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration.
type Config struct {
	OpenAIKey   string
	OpenAIModel string

	// CRM is optional; with no URL/key the lead falls back to the log.
	CRMAPIURL string
	CRMAPIKey string

	LeadsDSN string
	Port     string

	TelegramToken string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o"),
		CRMAPIURL:     os.Getenv("CRM_API_URL"),
		CRMAPIKey:     os.Getenv("CRM_API_KEY"),
		LeadsDSN:      getEnv("LEADS_SQLITE_DSN", "leads.db"),
		Port:          getEnv("PORT", "8080"),
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
