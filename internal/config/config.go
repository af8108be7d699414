// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ericfisherdev/repobrowser/internal/domain/model"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr    string
	DBPath        string
	GitHubToken   string
	DefaultWindow model.TimeWindow
	SessionTTL    time.Duration
	LogLevel      slog.Level
}

// HasGitHubToken returns true when a token was provided. Without one the
// search API is queried unauthenticated.
func (c *Config) HasGitHubToken() bool {
	return c.GitHubToken != ""
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional. Defaults: REPOBROWSER_LISTEN_ADDR (127.0.0.1:8080),
// REPOBROWSER_DB_PATH (repobrowser.db), REPOBROWSER_GITHUB_TOKEN (empty),
// REPOBROWSER_DEFAULT_WINDOW (1 month), REPOBROWSER_SESSION_TTL (30m),
// REPOBROWSER_LOG_LEVEL (info).
func Load() (*Config, error) {
	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("REPOBROWSER_LISTEN_ADDR"); ok && v != "" {
		listenAddr = v
	}

	dbPath := "repobrowser.db"
	if v, ok := os.LookupEnv("REPOBROWSER_DB_PATH"); ok && v != "" {
		dbPath = v
	}

	defaultWindow := model.DefaultTimeWindow
	if v, ok := os.LookupEnv("REPOBROWSER_DEFAULT_WINDOW"); ok && v != "" {
		parsed, err := model.ParseTimeWindow(v)
		if err != nil {
			return nil, fmt.Errorf("REPOBROWSER_DEFAULT_WINDOW: %w", err)
		}
		defaultWindow = parsed
	}

	sessionTTL := 30 * time.Minute
	if v, ok := os.LookupEnv("REPOBROWSER_SESSION_TTL"); ok && v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("REPOBROWSER_SESSION_TTL has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("REPOBROWSER_SESSION_TTL must be positive, got %s", parsed)
		}
		sessionTTL = parsed
	}

	logLevel := slog.LevelInfo
	if v, ok := os.LookupEnv("REPOBROWSER_LOG_LEVEL"); ok && v != "" {
		if err := logLevel.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
			return nil, fmt.Errorf("REPOBROWSER_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	return &Config{
		ListenAddr:    listenAddr,
		DBPath:        dbPath,
		GitHubToken:   strings.TrimSpace(os.Getenv("REPOBROWSER_GITHUB_TOKEN")),
		DefaultWindow: defaultWindow,
		SessionTTL:    sessionTTL,
		LogLevel:      logLevel,
	}, nil
}
