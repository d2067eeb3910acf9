package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/cache"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/config"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/db"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/handlers"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/identity"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/logger"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/middleware"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/payment"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Configure(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := newIdentityProvider(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize identity provider")
	}

	// The store is dialed lazily on the first request.
	manager := db.NewManager(cfg.MongoURI, cfg.DatabaseName, db.WithOnConnect(db.EnsureIndexes))

	roles := newRoleCache(ctx, cfg)

	userService := services.NewUserService(manager, provider, roles)
	scholarshipService := services.NewScholarshipService(manager)
	applicationService := services.NewApplicationService(manager)
	reviewService := services.NewReviewService(manager)
	checkoutService := services.NewCheckoutService(payment.NewStripeProcessor(cfg.StripeSecret, cfg.SiteDomain))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := handlers.NewRouter(handlers.RouterConfig{
		Verifier:     provider,
		Users:        userService,
		Scholarships: scholarshipService,
		Applications: applicationService,
		Reviews:      reviewService,
		Checkout:     checkoutService,
		Metrics:      middleware.NewMetrics(registry, "scholarstream"),
	})

	cors := ghandlers.CORS(
		ghandlers.AllowedOrigins([]string{"*"}),
		ghandlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
		ghandlers.AllowedHeaders([]string{"Content-Type", "Authorization", middleware.RequestIDHeader}),
	)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      cors(router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	if closer, ok := roles.(*cache.RedisRoleCache); ok {
		if err := closer.Close(); err != nil {
			logger.Error().Err(err).Msg("closing Redis")
		}
	}
	if err := manager.Close(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("disconnecting from MongoDB")
	}
}

func newIdentityProvider(ctx context.Context, cfg *config.Config) (identity.Provider, error) {
	if cfg.FirebaseServiceKey != "" {
		return identity.NewFirebaseProvider(ctx, cfg.FirebaseServiceKey)
	}
	logger.Warn().Msg("FB_SERVICE_KEY not set, verifying tokens locally with JWT_SECRET")
	return identity.NewJWTProvider(cfg.JWTSecret), nil
}

// newRoleCache falls back to no caching when Redis is absent or unreachable.
func newRoleCache(ctx context.Context, cfg *config.Config) cache.RoleCache {
	if cfg.RedisURL == "" {
		return cache.NopRoleCache{}
	}
	rc, err := cache.NewRedisRoleCache(ctx, cfg.RedisURL, cfg.RoleCacheTTL)
	if err != nil {
		logger.Warn().Err(err).Msg("role cache disabled")
		return cache.NopRoleCache{}
	}
	return rc
}
