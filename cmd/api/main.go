package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/auraflux/auraflux/internal/app"
	"github.com/auraflux/auraflux/internal/config"
	"github.com/auraflux/auraflux/internal/logger"
	"github.com/auraflux/auraflux/internal/metrics"
	"github.com/auraflux/auraflux/internal/middleware"
	"github.com/auraflux/auraflux/internal/shutdown"
)

func main() {
	zapLogger, err := logger.FromConfig(loadLoggerConfig())
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	container, err := app.NewContainer(zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize application", zap.Error(err))
	}
	cfg := container.Config

	fiberApp := fiber.New(fiber.Config{
		AppName:               "Auraflux API",
		ReadTimeout:           cfg.API.ReadTimeout,
		WriteTimeout:          cfg.API.WriteTimeout,
		DisableStartupMessage: true,
	})

	// Middleware stack
	fiberApp.Use(recover.New())
	fiberApp.Use(middleware.CompressionMiddleware())
	fiberApp.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	fiberApp.Use(cors.New())

	metricsInstance := metrics.GetMetrics()
	fiberApp.Use(func(c *fiber.Ctx) error {
		metricsInstance.IncrementRequests()
		return c.Next()
	})

	// Status and registry endpoints
	fiberApp.Get("/", container.MetaHandler.Root)
	fiberApp.Get("/supported", middleware.CacheMiddleware(middleware.CacheConfig{
		MaxAge: 3600,
		Public: true,
	}), container.MetaHandler.Supported)

	// Health and metrics
	fiberApp.Get("/health", middleware.NoCacheMiddleware(), container.HealthHandler.BasicHealth)
	fiberApp.Get("/health/details", middleware.NoCacheMiddleware(), container.HealthHandler.DetailedHealth)
	fiberApp.Get("/metrics", middleware.CacheMiddleware(middleware.CacheConfig{
		MaxAge: 30,
		Public: true,
	}), func(c *fiber.Ctx) error {
		snapshot := metricsInstance.GetSnapshot()
		snapshot["short_links"] = container.Store.Snapshot()
		snapshot["deduplication"] = container.Flight.Stats()
		return c.JSON(snapshot)
	})

	// Short-code redeem, then one listing route per platform
	container.DownloadHandler.Register(fiberApp)
	container.MediaHandler.Register(fiberApp)

	addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
	zapLogger.Info("Starting API server", zap.String("addr", addr))

	go func() {
		if err := fiberApp.Listen(addr); err != nil {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	gs := shutdown.NewGracefulShutdown(zapLogger, 30*time.Second)
	gs.Register("http_server", func(ctx context.Context) error {
		return fiberApp.ShutdownWithContext(ctx)
	})
	gs.Register("container", func(context.Context) error {
		return container.Close()
	})
	gs.Wait()
}

// loadLoggerConfig reads logging settings directly from the environment
// so the logger exists before the full configuration is loaded.
func loadLoggerConfig() config.LoggerConfig {
	return config.LoggerConfig{
		Level:      getEnv("LOG_LEVEL", "info"),
		Format:     getEnv("LOG_FORMAT", "json"),
		OutputPath: getEnv("LOG_OUTPUT", "stdout"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
