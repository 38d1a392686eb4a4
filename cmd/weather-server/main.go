package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	httpapi "github.com/chaminda360/weather-server/internal/api/http"
	"github.com/chaminda360/weather-server/internal/config"
	"github.com/chaminda360/weather-server/internal/mcpserver"
	"github.com/chaminda360/weather-server/internal/weather"
	"github.com/chaminda360/weather-server/internal/weather/providers"
)

func main() {
	// Load configuration; a missing API key must prevent startup.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Shared HTTP client for outbound provider calls, with an explicit
	// timeout so no request hangs on transport defaults.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewOpenWeatherClient(httpClient, cfg.OpenWeatherAPIKey, cfg.BaseURL, logger)
	srv := mcpserver.New(cfg, provider, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional HTTP debug surface; stdout stays protocol-only regardless.
	var app *fiber.App
	if cfg.HTTPAddr != "" {
		app = newDebugApp(provider, cfg.DefaultCity)
		go func() {
			if err := app.Listen(cfg.HTTPAddr); err != nil {
				logger.Error("debug server stopped", zap.Error(err))
			}
		}()
		logger.Info("debug server listening", zap.String("addr", cfg.HTTPAddr))
	}

	logger.Info("starting MCP server on stdio",
		zap.String("default_city", cfg.DefaultCity),
		zap.Duration("http_timeout", cfg.HTTPTimeout))

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mcp server exited", zap.Error(err))
	}

	if app != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("error during debug server shutdown", zap.Error(err))
		}
	}
}

// newLogger builds a production zap logger pinned to stderr; stdout carries
// the protocol stream and must never receive diagnostics.
func newLogger() (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}

func newDebugApp(provider weather.Provider, defaultCity string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-server",
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

	// Request logs join the rest of the diagnostics on stderr.
	app.Use(fiberlogger.New(fiberlogger.Config{Output: os.Stderr}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-server",
		})
	})

	httpapi.RegisterRoutes(app, provider, defaultCity)
	return app
}
