package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"thurianx/internal/domain/entity"
)

type Config struct {
	HTTPAddr        string
	TelegramToken   string
	AnalysisDelay   time.Duration
	HistoryLimit    int
	DefaultLanguage entity.Language
	SessionTTL      time.Duration
	SweepSchedule   string
	StaticDir       string
	MaxUploadBytes  int64
	PreviewMaxSide  int
	LogLevel        string
	LogFormat       string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	// a missing .env file is fine
	_ = godotenv.Load()

	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults for
// unset variables.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		HTTPAddr:      get("HTTP_ADDR", ":8080"),
		TelegramToken: getenv("TELEGRAM_TOKEN"),
		SweepSchedule: get("SWEEP_SCHEDULE", "@every 1m"),
		StaticDir:     get("STATIC_DIR", "./public"),
		LogLevel:      get("LOG_LEVEL", "info"),
		LogFormat:     get("LOG_FORMAT", "console"),
	}

	var err error
	if cfg.AnalysisDelay, err = time.ParseDuration(get("ANALYSIS_DELAY", "2s")); err != nil {
		return nil, fmt.Errorf("ANALYSIS_DELAY: %w", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(get("SESSION_TTL", "30m")); err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if cfg.HistoryLimit, err = strconv.Atoi(get("HISTORY_LIMIT", "5")); err != nil {
		return nil, fmt.Errorf("HISTORY_LIMIT: %w", err)
	}
	if cfg.PreviewMaxSide, err = strconv.Atoi(get("PREVIEW_MAX_SIDE", "720")); err != nil {
		return nil, fmt.Errorf("PREVIEW_MAX_SIDE: %w", err)
	}
	if cfg.MaxUploadBytes, err = strconv.ParseInt(get("MAX_UPLOAD_BYTES", "10485760"), 10, 64); err != nil {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
	}
	if cfg.DefaultLanguage, err = entity.ParseLanguage(get("DEFAULT_LANGUAGE", "th")); err != nil {
		return nil, fmt.Errorf("DEFAULT_LANGUAGE: %w", err)
	}

	if cfg.AnalysisDelay < 0 {
		return nil, fmt.Errorf("ANALYSIS_DELAY must not be negative")
	}
	if cfg.HistoryLimit <= 0 {
		return nil, fmt.Errorf("HISTORY_LIMIT must be positive")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	return cfg, nil
}
