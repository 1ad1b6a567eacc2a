// Package config loads runtime configuration from environment variables.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	SaveDir  string // save-slot directory for the file store
	RedisURL string // if set, saves go to Redis instead of files
	LogLevel slog.Level
}

func Load() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		SaveDir:  getEnv("LOREBOUND_SAVE_DIR", filepath.Join(home, ".lorebound", "saves")),
		RedisURL: getEnv("LOREBOUND_REDIS_URL", ""),
		LogLevel: parseLogLevel(getEnv("LOREBOUND_LOG_LEVEL", "info")),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
