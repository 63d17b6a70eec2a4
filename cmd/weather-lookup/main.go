package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-lookup/internal/api/http"
	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/scheduler"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/sources"
)

func main() {
	// Load configuration (also reads .env when present).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for an HTTP data source.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	source := sources.Open(cfg.DataSource, httpClient)
	service := weather.NewService(source, weather.WithLocation(cfg.Location))

	// Browser sessions with configured retention.
	sessions := store.NewMemoryStore(cfg.SessionMaxCount, cfg.SessionMaxAge)

	// Single load attempt in the background; requests see NotReady until it ends.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.LoadTimeout)
		defer cancel()
		if err := service.Load(ctx); err != nil {
			log.Printf("ERROR: weather data unavailable until restart: %v", err)
		}
	}()

	// Watcher that reports when the source drifts from the served dataset.
	watcher := scheduler.New(service, source, cfg.WatchInterval, cfg.LoadTimeout)
	if err := watcher.Start(); err != nil {
		log.Fatalf("failed to start watcher: %v", err)
	}
	defer watcher.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-lookup",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-lookup",
		})
	})

	// Widget pages and API routes.
	httpapi.RegisterRoutes(app, service, sessions)

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
