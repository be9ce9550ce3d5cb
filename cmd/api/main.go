// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the snipbin HTTP server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open storage: PostgreSQL (pgxpool) and Redis, or the in-memory stores.
//  4. Run database migrations (idempotent, PostgreSQL only).
//  5. Wire the credential store, session manager and snippet guard.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/taibuivan/snipbin/internal/api"
	"github.com/taibuivan/snipbin/internal/memory"
	"github.com/taibuivan/snipbin/internal/platform/config"
	"github.com/taibuivan/snipbin/internal/platform/constants"
	"github.com/taibuivan/snipbin/internal/platform/migration"
	pgstore "github.com/taibuivan/snipbin/internal/platform/postgres"
	redisstore "github.com/taibuivan/snipbin/internal/platform/redis"
	"github.com/taibuivan/snipbin/internal/platform/sec"
	"github.com/taibuivan/snipbin/internal/snippet"
	"github.com/taibuivan/snipbin/internal/users/account"
	"github.com/taibuivan/snipbin/internal/users/session"
)

// storage is the set of backends selected by STORAGE_DRIVER.
type storage struct {
	accounts account.Repository
	snippets snippet.Repository
	sessions session.Store
	checks   []api.Check
	close    func()
}

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "snipbin"))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "snipbin"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage_driver", cfg.StorageDriver),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Storage ────────────────────────────────────────────────────────
	var store storage
	if cfg.UsesPostgres() {
		store, err = openPostgres(startupCtx, cfg, log)
		must(log, err, "open postgres storage")
	} else {
		log.Warn("memory_storage_enabled", slog.String("note", "data is lost on restart"))
		store = storage{
			accounts: memory.NewAccountStore(),
			snippets: memory.NewSnippetStore(),
			sessions: memory.NewSessionStore(),
			close:    func() {},
		}
	}
	defer store.close()

	// ── 4. Security primitives ────────────────────────────────────────────
	hasher, err := sec.NewPasswordHasher(cfg.BcryptCost)
	must(log, err, "initialize password hasher")

	signer, err := sec.NewCookieSigner(cfg.SessionSecret, constants.SessionIssuer)
	must(log, err, "initialize cookie signer")

	sessions := session.NewManager(store.sessions, signer, session.CookieOptions{
		Name:   cfg.SessionName,
		Secure: cfg.TLSTerminated,
		TTL:    cfg.SessionTTL,
	})

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	accountService := account.NewService(store.accounts, hasher)
	snippetService := snippet.NewService(store.snippets)
	guard := snippet.NewGuard(snippetService)

	liveness, readiness := api.NewHealthHandlers(store.checks, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Account:   account.NewHandler(accountService, sessions),
		Snippet:   snippet.NewHandler(snippetService, guard, sessions),
	}

	server := api.NewServer(cfg, log, handlers)

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// openPostgres connects the pool and Redis, applies migrations, and returns
// the durable backends.
func openPostgres(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage, error) {
	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return storage{}, err
	}

	rdb, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
	if err != nil {
		pool.Close()
		return storage{}, err
	}

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		pool.Close()
		_ = rdb.Close()
		return storage{}, err
	}

	return storage{
		accounts: account.NewPostgresRepository(pool),
		snippets: snippet.NewPostgresRepository(pool),
		sessions: session.NewRedisStore(rdb),
		checks: []api.Check{
			{Name: "postgres", Ping: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
			{Name: "redis", Ping: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }},
		},
		close: func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
			log.Info("closing_postgres_pool")
			pool.Close()
		},
	}, nil
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
