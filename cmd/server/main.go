package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"goldtrack/internal/adapters/http/middleware"
	"goldtrack/internal/adapters/http/routes"
	"goldtrack/internal/adapters/persistence/repositories"
	"goldtrack/internal/config"
	"goldtrack/internal/core/services"
	"goldtrack/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	_ "goldtrack/docs" // Swagger docs
)

// @title GoldTrack API
// @version 1.0
// @description Gold retail sales and collections tracker API

// @contact.name API Support
// @contact.email support@newegyptgold.com

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zl, err := logger.New(logger.DefaultConfig(cfg.IsDev(), cfg.Log.Level, cfg.Log.Encoding))
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	err = run(cfg, zl)
	if err != nil {
		zl.Error("server exited with error", zap.Error(err))
	}
	zl.Sync() //nolint:errcheck
	if err != nil {
		os.Exit(1)
	}
}

// run owns every resource opened after the logger, so its defers run
// before main exits.
func run(cfg *config.Config, zl *zap.Logger) error {
	db, err := config.ConnectDatabase(cfg, zl)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			zl.Error("failed to close database", zap.Error(err))
		}
	}()

	if cfg.IsDev() {
		if err := config.NewSeeder(db, cfg, zl).Run(); err != nil {
			zl.Warn("seeding failed", zap.Error(err))
		}
	}

	cronService := services.NewCronService(repositories.NewRefreshTokenRepository(db), cfg.Business.Location, zl)
	if err := cronService.Start(); err != nil {
		return fmt.Errorf("start cron: %w", err)
	}
	defer cronService.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "GoldTrack API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    10 * 1024 * 1024,
	})

	middleware.Setup(app, cfg)
	routes.Setup(app, db, cfg, zl)

	go gracefulShutdown(app, zl)

	zl.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("mode", cfg.AppMode),
		zap.String("timezone", cfg.Business.Location.String()),
	)
	return app.Listen(":" + cfg.Port)
}

// gracefulShutdown stops the server on SIGINT or SIGTERM. Listen then
// returns and the deferred cleanups in main run.
func gracefulShutdown(app *fiber.App, zl *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zl.Error("error during shutdown", zap.Error(err))
	}
	zl.Info("server stopped gracefully")
}
