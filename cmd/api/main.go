// Copyright (c) 2026 MangroveNet. All rights reserved.

// Command api is the entry point for the MangroveNet HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Select the attachment storage driver (local directory or Minio).
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/mangrovenet/mangrovenet/internal/api"
	"github.com/mangrovenet/mangrovenet/internal/core/comment"
	"github.com/mangrovenet/mangrovenet/internal/core/content"
	"github.com/mangrovenet/mangrovenet/internal/core/country"
	"github.com/mangrovenet/mangrovenet/internal/platform/config"
	"github.com/mangrovenet/mangrovenet/internal/platform/constants"
	"github.com/mangrovenet/mangrovenet/internal/platform/migration"
	pgstore "github.com/mangrovenet/mangrovenet/internal/platform/postgres"
	redisstore "github.com/mangrovenet/mangrovenet/internal/platform/redis"
	"github.com/mangrovenet/mangrovenet/internal/platform/sec"
	"github.com/mangrovenet/mangrovenet/internal/platform/storage"
	"github.com/mangrovenet/mangrovenet/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "mangrovenet"))
	slog.SetDefault(log)

	log.Info("[MangroveNet] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "mangrovenet"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage_driver", cfg.StorageDriver),
		slog.String("score_validation", cfg.ScoreValidation),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Long-lived context for background helpers (rate limiter janitor).
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Attachment Storage ─────────────────────────────────────────────
	var fileStore storage.Store
	var uploadsHandler http.Handler

	switch cfg.StorageDriver {
	case config.StorageDriverMinio:
		minioStore, err := storage.NewMinioStore(startupCtx,
			cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
			cfg.MinioBucket, cfg.MinioUseSSL)
		must(log, err, "connect to minio")
		fileStore = minioStore

	default:
		localStore, err := storage.NewLocalStore(cfg.UploadDir)
		must(log, err, "prepare upload directory")
		fileStore = localStore
		uploadsHandler = http.StripPrefix(constants.UploadPublicPrefix,
			http.FileServer(http.Dir(localStore.Dir())))
	}

	// ── 7. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(log,
		api.ProbeTarget{Name: "postgres", Check: func() error {
			return pgstore.Ping(context.Background(), pool)
		}},
		api.ProbeTarget{Name: "redis", Check: func() error {
			return redisstore.Ping(context.Background(), rdb)
		}},
	)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(userRepository, jwtSvc)
	authHandler := auth.NewHandler(authService)

	countryRepository := country.NewPostgresRepository(pool)
	countryService := country.NewService(countryRepository, log)
	countryHandler := country.NewHandler(countryService)

	commentRepository := comment.NewPostgresRepository(pool)
	commentService := comment.NewService(commentRepository, log)
	commentHandler := comment.NewHandler(commentService)

	contentRepository := content.NewPostgresRepository(pool)
	publishedCache := content.NewPublishedCache(rdb, log)
	contentService := content.NewService(contentRepository, fileStore, publishedCache, cfg.ScoreValidation, log)
	contentHandler := content.NewHandler(contentService)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Content:   contentHandler,
		Comment:   commentHandler,
		Country:   countryHandler,
		Uploads:   uploadsHandler,
	}

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
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
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
