// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

// Command api is the entry point for the CRM Local HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Seed the admin account and the prestation catalog.
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

	"github.com/crmlocal/api/internal/api"
	"github.com/crmlocal/api/internal/crm/catalog"
	"github.com/crmlocal/api/internal/crm/client"
	"github.com/crmlocal/api/internal/crm/company"
	"github.com/crmlocal/api/internal/crm/importer"
	"github.com/crmlocal/api/internal/crm/inventory"
	"github.com/crmlocal/api/internal/crm/serviceorder"
	"github.com/crmlocal/api/internal/crm/workload"
	"github.com/crmlocal/api/internal/platform/config"
	"github.com/crmlocal/api/internal/platform/constants"
	"github.com/crmlocal/api/internal/platform/migration"
	pgstore "github.com/crmlocal/api/internal/platform/postgres"
	redisstore "github.com/crmlocal/api/internal/platform/redis"
	"github.com/crmlocal/api/internal/platform/sec"
	"github.com/crmlocal/api/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

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

	// ── 6. Session Infrastructure ─────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.SecretKey, constants.AuthIssuer, cfg.TokenTTL())
	must(log, err, "initialize token service")

	cookies := sec.NewSessionCookie(cfg.SessionCookieName, cfg.SessionCookieSecure)
	passwordPolicy := sec.PasswordPolicy{MinLength: cfg.PasswordMinLength}

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	presenceRepository := auth.NewPresenceRepository(rdb)
	authService := auth.NewService(userRepository, presenceRepository, tokenService, passwordPolicy, cfg.TokenTTL())
	authHandler := auth.NewHandler(authService, cookies)

	companyService := company.NewService(company.NewPostgresRepository(pool), log)
	companyHandler := company.NewHandler(companyService)

	clientService := client.NewService(client.NewPostgresRepository(pool), companyService, log)
	clientHandler := client.NewHandler(clientService)

	catalogService := catalog.NewService(catalog.NewPostgresRepository(pool), log)
	catalogHandler := catalog.NewHandler(catalogService)

	orderService := serviceorder.NewService(serviceorder.NewPostgresRepository(pool), catalogService, log)
	orderHandler := serviceorder.NewHandler(orderService)

	inventoryService := inventory.NewService(
		inventory.NewPostgresFilterRepository(pool),
		inventory.NewPostgresBeltRepository(pool),
		log,
	)
	inventoryHandler := inventory.NewHandler(inventoryService)

	workloadService := workload.NewService(workload.NewPostgresRepository(pool), log)
	workloadHandler := workload.NewHandler(workloadService)

	importerService := importer.NewService(clientService, log)
	importerHandler := importer.NewHandler(importerService)

	// ── 9. Seed Data ──────────────────────────────────────────────────────
	must(log, authService.EnsureAdmin(startupCtx, cfg.AdminUsername, cfg.AdminPassword), "seed admin account")
	must(log, catalogService.SeedDefaults(startupCtx), "seed prestation catalog")

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         authHandler,
		Company:      companyHandler,
		Client:       clientHandler,
		ServiceOrder: orderHandler,
		Catalog:      catalogHandler,
		Inventory:    inventoryHandler,
		Workload:     workloadHandler,
		Importer:     importerHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, cookies, tokenService, authService, handlers)

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
