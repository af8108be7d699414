package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	githubadapter "github.com/ericfisherdev/repobrowser/internal/adapter/driven/github"
	"github.com/ericfisherdev/repobrowser/internal/application"
	"github.com/ericfisherdev/repobrowser/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReloadSearcher_PicksUpNewToken(t *testing.T) {
	provider := application.NewSearcherProvider(githubadapter.NewClient(""))
	t.Setenv("REPOBROWSER_GITHUB_TOKEN", "ghp_rotated")

	require.NoError(t, reloadSearcher(provider, config.Load, discardLogger()))

	client, ok := provider.Current().(*githubadapter.Client)
	require.True(t, ok, "provider should hold a GitHub client")
	assert.True(t, client.Authenticated())
}

func TestReloadSearcher_KeepsClientOnConfigError(t *testing.T) {
	original := githubadapter.NewClient("ghp_original")
	provider := application.NewSearcherProvider(original)
	loadErr := errors.New("bad env")

	err := reloadSearcher(provider, func() (*config.Config, error) { return nil, loadErr }, discardLogger())

	require.ErrorIs(t, err, loadErr)
	assert.Same(t, original, provider.Current())
}

func TestWatchReload_ReloadsOncePerSignal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	reloaded := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- watchReload(ctx, sig, func() { reloaded <- struct{}{} })
	}()

	for range 2 {
		sig <- syscall.SIGHUP
		select {
		case <-reloaded:
		case <-time.After(time.Second):
			t.Fatal("reload was not called")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watchReload did not return after cancel")
	}
}
