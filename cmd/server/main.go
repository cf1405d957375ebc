package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"wastewise/docs"
	"wastewise/internal/auth"
	"wastewise/internal/cache"
	"wastewise/internal/config"
	"wastewise/internal/db"
	"wastewise/internal/handler"
	"wastewise/internal/middleware"
	"wastewise/internal/repository"
	"wastewise/internal/router"
	"wastewise/internal/service"
)

// @title WasteWise API
// @version 1.0
// @description Waste tracking, pickup coordination and food donation API with role-based JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// A missing .env file is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config", "error", err)
		os.Exit(1)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("database init", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		logger.Error("auto-migrate", "error", err)
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if cacheClient == nil {
		logger.Info("REDIS_ADDR not set, summary cache disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	entryRepo := repository.NewWasteEntryRepository(gormDB)
	collectionRepo := repository.NewWasteCollectionRepository(gormDB)
	donationRepo := repository.NewFoodDonationRepository(gormDB)
	activityRepo := repository.NewActivityLogRepository(gormDB)

	tokens, err := auth.NewTokenService(cfg.JWTSecret, auth.WithIssuer(cfg.JWTIssuer), auth.WithTTL(cfg.JWTTTL))
	if err != nil {
		logger.Error("token service", "error", err)
		os.Exit(1)
	}

	activity := service.NewActivityLogger(activityRepo)

	// Services
	authService := service.NewAuthService(userRepo, tokens, auth.NewBcryptHasher(auth.DefaultBcryptCost), activity)
	wasteService := service.NewWasteService(entryRepo, cacheClient, activity)
	collectionService := service.NewCollectionService(entryRepo, collectionRepo, cacheClient, activity)
	donationService := service.NewDonationService(donationRepo, cacheClient, activity)
	reportService := service.NewReportService(entryRepo, collectionRepo, donationRepo, cacheClient, cfg.SummaryCacheTTL)
	adminService := service.NewAdminService(userRepo, entryRepo, collectionRepo, donationRepo, activityRepo)

	authLimiter := middleware.NewIPRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)
	stopSweep := make(chan struct{})
	go authLimiter.Run(stopSweep)

	e := echo.New()
	e.HideBanner = true
	applyServerTimeouts(e, cfg)
	router.Register(e, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Waste:      handler.NewWasteHandler(wasteService),
		Collection: handler.NewCollectionHandler(collectionService),
		Donation:   handler.NewDonationHandler(donationService),
		Report:     handler.NewReportHandler(reportService),
		Admin:      handler.NewAdminHandler(adminService),
		Health:     handler.NewHealthHandler(gormDB),
	}, tokens, authLimiter, middleware.NewMetrics())

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}
	logger.Info("swagger documentation available", "path", "/swagger/index.html")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info("server starting", "addr", addr, "driver", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server start", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	close(stopSweep)
	activity.Close()
	if err := cacheClient.Close(); err != nil {
		logger.Warn("cache close", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// applyServerTimeouts bounds how long a client may hold a connection.
func applyServerTimeouts(e *echo.Echo, cfg *config.Config) {
	e.Server.ReadHeaderTimeout = cfg.ReadHeaderTimeout
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout
	e.Server.IdleTimeout = cfg.IdleTimeout
}
