package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/pulseai-health/hospital-directory/internal/adapters/cache"
	"github.com/pulseai-health/hospital-directory/internal/adapters/database"
	"github.com/pulseai-health/hospital-directory/internal/adapters/events"
	"github.com/pulseai-health/hospital-directory/internal/adapters/spreadsheet"
	"github.com/pulseai-health/hospital-directory/internal/api/handlers"
	"github.com/pulseai-health/hospital-directory/internal/api/middleware"
	"github.com/pulseai-health/hospital-directory/internal/api/routes"
	"github.com/pulseai-health/hospital-directory/internal/application/services"
	"github.com/pulseai-health/hospital-directory/internal/domain/providers"
	"github.com/pulseai-health/hospital-directory/internal/domain/repositories"
	"github.com/pulseai-health/hospital-directory/internal/infrastructure/clients/postgres"
	redisclient "github.com/pulseai-health/hospital-directory/internal/infrastructure/clients/redis"
	"github.com/pulseai-health/hospital-directory/internal/infrastructure/clients/sheets"
	"github.com/pulseai-health/hospital-directory/internal/infrastructure/observability"
	"github.com/pulseai-health/hospital-directory/internal/search"
	"github.com/pulseai-health/hospital-directory/pkg/config"
)

func main() {
	// Load .env if present; env vars already set take precedence.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	ctx := context.Background()

	// Initialize OpenTelemetry
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to setup OpenTelemetry, continuing without tracing")
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Warn().Err(err).Msg("Failed to shutdown OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry tracing enabled")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize metrics, continuing without them")
		metrics = nil
	}

	// Select the directory backend
	var directory repositories.HospitalDirectory
	switch cfg.Directory.Backend {
	case config.BackendSpreadsheet:
		sheetsClient, err := sheets.NewClient(ctx, &cfg.Sheets)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Google Sheets client")
		}
		if err := sheetsClient.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to reach spreadsheet")
		}
		directory = spreadsheet.NewDirectoryAdapter(sheetsClient)
		log.Info().Str("backend", cfg.Directory.Backend).Msg("Using spreadsheet directory backend")
	case config.BackendPostgres:
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pgClient.Close()
		directory = database.NewHospitalAdapter(pgClient)
		log.Info().Str("backend", cfg.Directory.Backend).Msg("Using PostgreSQL directory backend")
	default:
		log.Fatal().Str("backend", cfg.Directory.Backend).Msg("Unknown directory backend")
	}

	// Optional Redis: caching, HTTP response cache, and the event bus.
	var (
		eventBus        providers.EventBus
		cacheMiddleware *middleware.CacheMiddleware
		invalidation    *services.CacheInvalidationService
	)
	if cfg.Redis.Enabled {
		redisCli, err := redisclient.NewClient(&cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisCli.Close()

		cacheProvider := cache.NewRedisAdapter(redisCli)
		directory = database.NewCachedDirectoryAdapter(directory, cacheProvider)
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)

		eventBus = events.NewRedisEventBus(redisCli)
		invalidation = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := invalidation.Start(); err != nil {
			log.Warn().Err(err).Msg("Failed to start cache invalidation service")
		}
		log.Info().Msg("Redis caching and event bus enabled")
	}

	engine := search.NewEngine(directory,
		search.WithDefaultRadius(cfg.Search.DefaultRadiusKm),
		search.WithMetrics(metrics),
	)

	hospitalHandler := handlers.NewHospitalHandler(directory, engine, eventBus)

	router := routes.NewRouter(hospitalHandler, cacheMiddleware, metrics)
	handler := router.SetupRoutes()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if invalidation != nil {
		invalidation.Stop()
	}
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close event bus")
		}
	}

	log.Info().Msg("Server exited")
}
