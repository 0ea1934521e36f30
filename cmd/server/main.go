package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/complaintdesk/complaints-api/internal/api"
	"github.com/complaintdesk/complaints-api/internal/api/handler"
	"github.com/complaintdesk/complaints-api/internal/core/ports"
	"github.com/complaintdesk/complaints-api/internal/core/service"
	"github.com/complaintdesk/complaints-api/internal/infrastructure/config"
	"github.com/complaintdesk/complaints-api/internal/infrastructure/db"
	redisdb "github.com/complaintdesk/complaints-api/internal/infrastructure/db/redis"
	"github.com/complaintdesk/complaints-api/pkg/logger"
)

// @title        Complaints API
// @version      1.0
// @description  Authenticated complaint registration and management.
// @BasePath     /

// @securityDefinitions.apikey AccessToken
// @in header
// @name x-access-token

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "complaints-api",
	})

	// --- Infrastructure ---
	store, err := db.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open store")
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("store close")
		}
	}()

	checks := map[string]handler.PingFunc{"store": store.Ping}

	var idem ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect to redis")
		}
		defer rdb.Close()

		idem = redisdb.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		log.Info().Msg("REDIS_ADDR not set, idempotency keys disabled")
	}

	// --- Services ---
	authService := service.NewAuthService(
		store.Users(),
		service.NewBcryptHasher(cfg.Auth.BcryptCost),
		service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		log.With().Str("component", "auth").Logger(),
	)
	complaintService := service.NewComplaintService(
		store.Complaints(),
		idem,
		log.With().Str("component", "complaints").Logger(),
	)

	e := api.NewRouter(api.Dependencies{
		Auth:           authService,
		Complaints:     complaintService,
		Checks:         checks,
		Logger:         log,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("driver", cfg.Store.Driver).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
