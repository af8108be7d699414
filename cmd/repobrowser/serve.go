package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	githubadapter "github.com/ericfisherdev/repobrowser/internal/adapter/driven/github"
	sqliteadapter "github.com/ericfisherdev/repobrowser/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/repobrowser/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/repobrowser/internal/adapter/driving/web"
	"github.com/ericfisherdev/repobrowser/internal/application"
	"github.com/ericfisherdev/repobrowser/internal/config"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the repository browser web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"default_window", cfg.DefaultWindow,
		"session_ttl", cfg.SessionTTL,
		"github_token", cfg.HasGitHubToken(),
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode) and migrate.
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	version, err := sqliteadapter.RunMigrations(db.Writer)
	if err != nil {
		return err
	}
	logger.Info("migrations complete", "path", db.Path(), "schema_version", version)

	// 4. Wire adapters and services.
	provider := application.NewSearcherProvider(githubadapter.NewClient(cfg.GitHubToken))
	selections := application.NewSelectionService(sqliteadapter.NewSelectionRepo(db), logger)
	registry := application.NewBrowserRegistry(
		provider,
		selections.OnSelect,
		cfg.DefaultWindow,
		cfg.SessionTTL,
		logger,
	)

	mux := http.NewServeMux()
	health := application.NewHealthService(db, provider, registry.Len)
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(application.NewSearchService(provider), selections, health, logger))
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(registry, selections, cfg.SessionTTL, logger))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httphandler.ApplyMiddleware(mux, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// 5. Run the server, the session janitor and the reload watcher until a
	// shutdown signal arrives.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return registry.Start(gctx)
	})

	// SIGHUP re-reads the environment and swaps the GitHub client, so a new
	// token takes effect without dropping sessions.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	g.Go(func() error {
		return watchReload(gctx, hup, func() {
			_ = reloadSearcher(provider, config.Load, logger)
		})
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("shutdown complete")
	return nil
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
