// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Pizza Noir HTTP API server.
//
// # Startup Sequence
//
//  1. Load configuration from environment variables.
//  2. Initialize structured logger.
//  3. Connect to PostgreSQL (pgxpool) and run migrations.
//  4. Connect to Redis (token denylist).
//  5. Build the token codec.
//  6. Wire repositories, services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/pizzanoir/internal/api"
	"github.com/taibuivan/pizzanoir/internal/auth"
	"github.com/taibuivan/pizzanoir/internal/pizza"
	"github.com/taibuivan/pizzanoir/internal/platform/config"
	"github.com/taibuivan/pizzanoir/internal/platform/constants"
	"github.com/taibuivan/pizzanoir/internal/platform/migration"
	pgstore "github.com/taibuivan/pizzanoir/internal/platform/postgres"
	redisstore "github.com/taibuivan/pizzanoir/internal/platform/redis"
	"github.com/taibuivan/pizzanoir/internal/platform/sec"
	"github.com/taibuivan/pizzanoir/internal/role"
)

func main() {
	// ── 1. Configuration ──────────────────────────────────────────────────
	bootLog := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	must(bootLog, err, "load configuration")

	// ── 2. Logger ─────────────────────────────────────────────────────────
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("version", constants.AppVersion),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisAddr(), cfg.RedisPassword, cfg.RedisDB, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Token Codec ────────────────────────────────────────────────────
	codec, err := sec.NewTokenCodec(cfg.JWTSecretKey, cfg.TokenLifetime(), constants.AuthIssuer)
	must(log, err, "initialize token codec")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	denylist := auth.NewRedisDenylist(rdb)
	authHandler := auth.NewHandler(auth.NewService(userRepository), codec, denylist, cfg.CookieSecure)

	pizzaRepository := pizza.NewPostgresPizzaRepository(pool)
	ingredientRepository := pizza.NewPostgresIngredientRepository(pool)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckDenylist: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	server := api.NewServer(rootCtx, cfg, log,
		api.Security{
			Verifier: codec,
			Denylist: denylist,
			Loader:   auth.NewPrincipalLoader(userRepository),
		},
		api.Handlers{
			Liveness:   liveness,
			Readiness:  readiness,
			Auth:       authHandler,
			Pizza:      pizza.NewPizzaHandler(pizza.NewPizzaService(pizzaRepository, ingredientRepository, log)),
			Ingredient: pizza.NewIngredientHandler(pizza.NewIngredientService(ingredientRepository, log)),
			Role:       role.NewHandler(role.NewService(role.NewPostgresRepository(pool), log)),
		},
	)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Startup wiring only. After startup, all errors are returned and handled.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
