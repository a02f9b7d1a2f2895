// Package main is the entrypoint for the AutoDiag API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/autodiag/autodiag/internal/api"
	"github.com/autodiag/autodiag/internal/api/handler"
	mw "github.com/autodiag/autodiag/internal/api/middleware"
	"github.com/autodiag/autodiag/internal/cache"
	"github.com/autodiag/autodiag/internal/config"
	"github.com/autodiag/autodiag/internal/diag"
	"github.com/autodiag/autodiag/internal/store"
)

const (
	shutdownTimeout    = 30 * time.Second
	startupPingTimeout = 5 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "env", cfg.Server.Env, "port", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Build the scoring engine, from a rules file when one is named
	kb := diag.DefaultKnowledgeBase()
	if cfg.Rules.File != "" {
		kb, err = diag.LoadKnowledgeBase(cfg.Rules.File)
		if err != nil {
			return fmt.Errorf("load rules: %w", err)
		}
		slog.Info("knowledge base loaded", "file", cfg.Rules.File)
	}
	engine := diag.NewEngine(kb)

	// 3. Connect to the database; the service runs degraded without one
	var db store.Store = store.Disabled{}
	if cfg.Database.URL == "" {
		slog.Warn("DATABASE_URL not set, diagnoses will not be persisted")
	} else {
		pool, err := store.Connect(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()

		pingCtx, cancel := context.WithTimeout(ctx, startupPingTimeout)
		err = pool.Ping(pingCtx)
		cancel()
		if err != nil {
			slog.Warn("database unreachable at startup, skipping migrations", "error", err)
		} else if err := store.RunMigrations(cfg.Database.URL, "migrations"); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		} else {
			slog.Info("database migrations applied")
		}

		db = store.NewPostgresStore(pool)
	}

	// 4. Create the Redis cache; rate limiting is disabled without one
	var cch cache.Cache
	if cfg.Redis.URL == "" {
		slog.Warn("REDIS_URL not set, rate limiting disabled")
	} else {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			slog.Warn("redis unreachable at startup", "error", err)
		} else {
			slog.Info("redis connected")
		}
		cch = redisCache
	}

	// 5. Build router with dependencies
	deps := api.Dependencies{
		RateLimit: mw.NewRateLimit(cch, cfg.RateLimit.PerMinute),

		RootHandler:     handler.NewRootHandler(),
		StatusHandler:   handler.NewStatusHandler(db, cch),
		DiagnoseHandler: handler.NewDiagnoseHandler(engine, db),
		HistoryHandler:  handler.NewHistoryHandler(db),
	}

	router := api.NewRouter(deps)

	// 6. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
