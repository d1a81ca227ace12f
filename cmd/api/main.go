// @title                      Property Management API
// @version                    1.0
// @description                Multi-tenant property management API with per-tenant namespaces.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/buildhub/property-api/internal/api"
	"github.com/buildhub/property-api/internal/api/handler"
	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/service"
	mongodb "github.com/buildhub/property-api/internal/infrastructure/db/mongo"
	redisdb "github.com/buildhub/property-api/internal/infrastructure/db/redis"
	"github.com/buildhub/property-api/internal/infrastructure/queue"
	"github.com/buildhub/property-api/internal/infrastructure/security"
	"github.com/buildhub/property-api/internal/pkg/config"
	"github.com/buildhub/property-api/pkg/logger"
)

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.New(logger.Options{})
		boot.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "property-api",
	})

	client, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, AppName: "property-api", Timeout: cfg.Mongo.Timeout})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer rdb.Close()

	// --- Storage ---
	rootNS := domain.Namespace(cfg.Mongo.RootDatabase)
	stores := mongodb.NewStoreFactory(client, cfg.Mongo.RootDatabase)
	tenants := mongodb.NewTenantRepository(client.Database(cfg.Mongo.RootDatabase))
	registry := mongodb.NewNamespaceRegistry(client)
	provisioner := service.NewProvisioner(mongodb.NewSchemaTarget(client), rootNS, log)

	// --- Security ---
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	tokens := security.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	guard := redisdb.NewOnboardingGuard(rdb, cfg.Onboarding.IdempotencyTTL)

	// --- Audit ---
	auditService := service.NewAuditService(stores)
	dispatcher := queue.NewAuditDispatcher(cfg.Audit.Workers, auditService, log)
	dispatcher.Start(ctx)

	// --- Services ---
	lookup := service.NewLookup(tenants, registry, stores, log)
	router := api.NewRouter(api.Dependencies{
		Auth:       service.NewAuthService(lookup, stores, hasher, tokens, log),
		Onboarding: service.NewOnboardingService(tenants, registry, provisioner, stores, hasher, guard, log),
		Tenants:    service.NewTenantService(tenants, registry, lookup, stores, cfg.Stats.Concurrency, log),
		Projects:   service.NewProjectService(dispatcher, log),
		Units:      service.NewUnitService(dispatcher, log),
		Users:      service.NewUserService(hasher, dispatcher, log),
		Audit:      auditService,
		Tokens:     tokens,
		Resolver:   service.NewResolver(tenants, stores, log),
		Health:     []handler.DependencyCheck{handler.MongoCheck(client), handler.RedisCheck(rdb)},
		Logger:     log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server starting")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("audit queue not fully drained")
	}
}
