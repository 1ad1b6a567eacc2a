package config

import (
	"log/slog"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LOREBOUND_SAVE_DIR", "")
	t.Setenv("LOREBOUND_REDIS_URL", "")
	t.Setenv("LOREBOUND_LOG_LEVEL", "")

	cfg := Load()

	if cfg.SaveDir == "" {
		t.Error("SaveDir empty")
	}
	if cfg.RedisURL != "" {
		t.Errorf("RedisURL = %q, want empty by default", cfg.RedisURL)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LOREBOUND_SAVE_DIR", "/tmp/saves")
	t.Setenv("LOREBOUND_REDIS_URL", "redis://localhost:6379")
	t.Setenv("LOREBOUND_LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.SaveDir != "/tmp/saves" {
		t.Errorf("SaveDir = %q", cfg.SaveDir)
	}
	if cfg.RedisURL != "redis://localhost:6379" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
