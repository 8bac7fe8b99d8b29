package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"iftarmap/database"
	"iftarmap/internal/config"
	"iftarmap/internal/httpapi/handler"
	"iftarmap/internal/httpapi/middleware"
	"iftarmap/internal/httpapi/repository"
	"iftarmap/internal/httpapi/service"
	"iftarmap/internal/identity"
	"iftarmap/internal/linkresolver"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if cfg.SeedOnStartup {
		if err := database.SeedIfEmpty(db, cfg.SeedTimeout, logger); err != nil {
			logger.Error("seed_failed", "error", err.Error())
		}
	}

	var linkCache *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		linkCache = redis.NewClient(opts)
		defer linkCache.Close()
	}

	router := buildRouter(cfg, db, linkCache, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_api_server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info("received_shutdown_signal")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown_error", "error", err.Error())
			os.Exit(1)
		}
		logger.Info("server_stopped_gracefully")
	case err := <-errChan:
		logger.Error("server_error", "error", err.Error())
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// buildRouter wires repositories, services, handlers and middleware into the
// gin engine. Kept separate from main so tests can stand up the full surface.
func buildRouter(cfg *config.Config, db *gorm.DB, linkCache *redis.Client, logger *slog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	placeRepo := repository.NewPlaceRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	imageRepo := repository.NewImageSubmissionRepository(db)
	userRepo := repository.NewUserRepository(db)

	placeService := service.NewPlaceService(placeRepo, reviewRepo, cfg.ImageAllowedHosts)
	reviewService := service.NewReviewService(reviewRepo, placeRepo)
	moderationService := service.NewModerationService(placeRepo, reviewRepo, imageRepo, cfg.ImageAllowedHosts, logger)
	statsService := service.NewStatsService(placeRepo, imageRepo)
	userService := service.NewUserService(userRepo, cfg.AdminEmails)

	verifier := identity.NewTokenVerifier(cfg.IdentityProjectID, cfg.IdentityIssuer, cfg.IdentityCertsURL)
	resolver := linkresolver.New(
		cfg.LinkAllowedHosts,
		rate.NewLimiter(rate.Limit(cfg.LinkRatePerSec), cfg.LinkRateBurst),
		linkCache,
		cfg.LinkCacheTTL,
		logger,
	)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "connected"})
	})

	authMw := middleware.AuthMiddleware(verifier, userService)
	linkRateMw := middleware.RateLimitByClientIP(float64(cfg.LinkRatePerSec), cfg.LinkRateBurst)

	api := router.Group("/api")
	handler.NewPlaceHandler(placeService).RegisterRoutes(api, authMw)
	handler.NewReviewHandler(reviewService).RegisterRoutes(api, authMw)
	handler.NewImageHandler(moderationService).RegisterRoutes(api, authMw)
	handler.NewLinkHandler(resolver).RegisterRoutes(api, linkRateMw)

	admin := api.Group("/admin", authMw, middleware.RequireAdmin())
	handler.NewAdminHandler(moderationService, statsService).RegisterRoutes(admin)

	return router
}
