package main

import (
	"context"
	"log/slog"
	"os"

	githubadapter "github.com/ericfisherdev/repobrowser/internal/adapter/driven/github"
	"github.com/ericfisherdev/repobrowser/internal/application"
	"github.com/ericfisherdev/repobrowser/internal/config"
)

// reloadSearcher re-reads the configuration and swaps in a GitHub client built
// from the current token. Fetches already in flight finish on the old client.
// On a configuration error the current client is kept.
func reloadSearcher(provider *application.SearcherProvider, load func() (*config.Config, error), logger *slog.Logger) error {
	cfg, err := load()
	if err != nil {
		logger.Error("reload failed, keeping current GitHub client", "error", err)
		return err
	}

	provider.Replace(githubadapter.NewClient(cfg.GitHubToken))
	logger.Info("GitHub client reloaded", "github_token", cfg.HasGitHubToken())
	return nil
}

// watchReload calls reload once per signal received on sig until ctx is done.
func watchReload(ctx context.Context, sig <-chan os.Signal, reload func()) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sig:
			reload()
		}
	}
}
