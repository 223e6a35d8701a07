package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	YouTubeAPIKey   string
	GeminiAPIKey    string
	GeminiModel     string
	YouTubeTimeout  time.Duration
	MaxCommentPages int
	PromptMaxChars  int
	SessionTTL      time.Duration
	SessionSweep    time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		YouTubeAPIKey:   getEnv("YOUTUBE_API_KEY", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		YouTubeTimeout:  getDurationEnv("YOUTUBE_TIMEOUT", "15s"),
		MaxCommentPages: getIntEnv("MAX_COMMENT_PAGES", 0),
		PromptMaxChars:  getIntEnv("PROMPT_MAX_CHARS", 30000),
		SessionTTL:      getDurationEnv("SESSION_TTL", "1h"),
		SessionSweep:    getDurationEnv("SESSION_SWEEP_INTERVAL", "10m"),
	}

	if cfg.YouTubeAPIKey == "" {
		log.Fatal("YOUTUBE_API_KEY is required")
	}
	if cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY is required")
	}

	log.Printf("Config loaded - Model: %s, Timeout: %v, MaxPages: %d, SessionTTL: %v",
		cfg.GeminiModel, cfg.YouTubeTimeout, cfg.MaxCommentPages, cfg.SessionTTL)

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
