// @title        FarmaPay Admin API
// @version      1.0
// @description  Identity provisioning and role-based access for the FarmaPay administrative backend.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/farmapay/admin-api/internal/api"
	"github.com/farmapay/admin-api/internal/core/domain"
	"github.com/farmapay/admin-api/internal/core/service"
	"github.com/farmapay/admin-api/internal/infrastructure/config"
	mongodb "github.com/farmapay/admin-api/internal/infrastructure/db/mongo"
	redisdb "github.com/farmapay/admin-api/internal/infrastructure/db/redis"
	"github.com/farmapay/admin-api/internal/infrastructure/queue"
	"github.com/farmapay/admin-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defaultRole, err := domain.ParseRole(cfg.DefaultRole)
	if err != nil {
		log.Fatal().Err(err).Str("default_role", cfg.DefaultRole).Msg("invalid DEFAULT_ROLE")
	}

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	profileRepo := mongodb.NewProfileRepository(db)
	if err := profileRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure profile indexes")
	}
	roleCache := redisdb.NewRoleCache(rdb)

	// --- Core services ---
	hasher := service.NewCredentialHasher(cfg.BcryptCost)
	provisioner := service.NewProvisionService(profileRepo, hasher, roleCache, defaultRole, log)
	authService := service.NewAuthService(profileRepo, hasher, cfg.JWTSecret, cfg.TokenTTL)
	sessions := service.NewSessionService(profileRepo, roleCache, cfg.JWTSecret, cfg.StoreLookupTimeout, log)

	dispatcher := queue.NewDispatcher(0, provisioner, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Auth:        authService,
		Provisioner: provisioner,
		Sessions:    sessions,
		Dispatcher:  dispatcher,
		Mongo:       db,
		Redis:       rdb,
		Log:         log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("admin api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
