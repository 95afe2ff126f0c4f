package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shade-storefront/config"
	"shade-storefront/internal/delivery/http/middleware"
	v1 "shade-storefront/internal/delivery/http/v1"
	"shade-storefront/internal/domain"
	"shade-storefront/internal/infrastructure/cache"
	"shade-storefront/internal/infrastructure/identity"
	"shade-storefront/internal/infrastructure/storage"
	"shade-storefront/internal/usecase"
	"shade-storefront/pkg/logger"
	"shade-storefront/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const serviceName = "shade-storefront"

var version = "dev"

func main() {
	cfg := config.LoadConfig()

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Snapshot storage
	backend, closeStorage, err := storage.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("Failed to open snapshot storage")
	}
	defer closeStorage()
	log.Info().Str("driver", cfg.StorageDriver).Msg("Snapshot storage ready")

	scope := func(deviceID string) domain.LocalStorage {
		return storage.NewNamespaced(backend, deviceID)
	}

	// Identity
	var provider domain.IdentityProvider
	switch cfg.IdentityProvider {
	case config.IdentityHTTP:
		provider = identity.NewHTTPProvider(cfg.IdentityURL, cfg.IdentityTimeout)
	default:
		log.Warn().Msg("Using mock identity provider: any credentials are accepted")
		provider = identity.NewMockProvider(cfg.MockAuthDelay)
	}

	// Live storefronts expire after the idle TTL, cleanup every idle TTL
	registry := cache.NewMemoryCache(cfg.StorefrontIdleTTL, cfg.StorefrontIdleTTL)
	storefrontUC := usecase.NewStorefrontUsecase(scope, provider, registry, cfg.StorefrontIdleTTL)

	// Set up Router
	mux := http.NewServeMux()

	tokens := utils.NewDeviceTokens(cfg.DeviceTokenSecret, cfg.DeviceTokenExpiry)
	deviceMiddleware := middleware.NewDeviceMiddleware(tokens, cfg.Env == "production")
	v1.RegisterRoutes(mux, storefrontUC, deviceMiddleware)

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":      "ok",
			"storage":     cfg.StorageDriver,
			"storefronts": storefrontUC.Active(),
		})
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%s", cfg.Port)

	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		middleware.NewDeviceOrIPKey(tokens),
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
	)

	// Apply CORS, Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg.AllowedOrigin)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart(serviceName, version, cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")
	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop(serviceName)
}
