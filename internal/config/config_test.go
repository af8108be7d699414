package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/repobrowser/internal/domain/model"
)

// allConfigKeys lists every REPOBROWSER_ env var that Load() reads.
var allConfigKeys = []string{
	"REPOBROWSER_LISTEN_ADDR",
	"REPOBROWSER_DB_PATH",
	"REPOBROWSER_GITHUB_TOKEN",
	"REPOBROWSER_DEFAULT_WINDOW",
	"REPOBROWSER_SESSION_TTL",
	"REPOBROWSER_LOG_LEVEL",
}

// isolateConfigEnv saves and unsets all REPOBROWSER_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("REPOBROWSER_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("REPOBROWSER_DB_PATH", "/tmp/test.db")
	t.Setenv("REPOBROWSER_GITHUB_TOKEN", "ghp_test123")
	t.Setenv("REPOBROWSER_DEFAULT_WINDOW", "1w")
	t.Setenv("REPOBROWSER_SESSION_TTL", "10m")
	t.Setenv("REPOBROWSER_LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "ghp_test123", cfg.GitHubToken)
	assert.True(t, cfg.HasGitHubToken())
	assert.Equal(t, model.WindowOneWeek, cfg.DefaultWindow)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "repobrowser.db", cfg.DBPath)
	assert.Equal(t, "", cfg.GitHubToken)
	assert.False(t, cfg.HasGitHubToken())
	assert.Equal(t, model.WindowOneMonth, cfg.DefaultWindow)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_InvalidDefaultWindow(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("REPOBROWSER_DEFAULT_WINDOW", "1 year")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownTimeWindow)
	assert.Contains(t, err.Error(), "REPOBROWSER_DEFAULT_WINDOW")
}

func TestLoad_InvalidSessionTTL(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("REPOBROWSER_SESSION_TTL", "not-a-duration")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REPOBROWSER_SESSION_TTL")
}

func TestLoad_NonPositiveSessionTTL(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("REPOBROWSER_SESSION_TTL", "0s")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("REPOBROWSER_LOG_LEVEL", "chatty")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REPOBROWSER_LOG_LEVEL")
}

func TestLoad_TokenIsTrimmed(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("REPOBROWSER_GITHUB_TOKEN", "  ghp_abc \n")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "ghp_abc", cfg.GitHubToken)
}
