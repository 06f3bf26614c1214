package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"talent-screen/internal/analysis"
	"talent-screen/internal/config"
	"talent-screen/internal/database/postgres"
	"talent-screen/internal/database/seeder"
	"talent-screen/internal/delivery/http/handler"
	"talent-screen/internal/delivery/http/middleware"
	"talent-screen/internal/delivery/http/routes"
	v1 "talent-screen/internal/delivery/http/routes/v1"
	"talent-screen/internal/infrastructure/cache"
	"talent-screen/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

// Bootstrap wires the full service: Postgres, Redis, the analysis provider
// chain, the websocket hub and the HTTP surface. The returned cleanup closes
// every long-lived resource.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	if logger == nil {
		logger = log.Default()
	}

	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}

	if cfg.Seed.Enabled {
		runner := seeder.Runner{Seeders: seeder.Defaults(cfg.Seed)}
		if err := runner.Run(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("seed database: %w", err)
		}
		logger.Printf("[Bootstrap] database schema ensured")
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	provider := buildProvider(ctx, cfg, logger)

	hub := ws.NewHub(logger)
	go hub.Run()

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	errMw := middleware.NewErrorMiddleware(logger)
	accessMw := middleware.NewAccessLogMiddleware(logger)
	f.Use(errMw.Middleware())
	f.Use(accessMw.Middleware())

	registry := routes.NewRegistry(
		handler.NewHealthHandler(db, redisCache),
		v1.Deps{
			Config:   cfg,
			DB:       db,
			Cache:    redisCache,
			Provider: provider,
			Hub:      hub,
			Logger:   logger,
		},
	)
	registry.Register(f)

	cleanup := func() error {
		if err := redisCache.Close(); err != nil {
			logger.Printf("redis close error: %v", err)
		}
		return db.Close()
	}

	return &App{Fiber: f}, cleanup, nil
}

// buildProvider returns the resilient analysis chain. Without Vertex AI
// credentials the deterministic fallback carries all traffic.
func buildProvider(ctx context.Context, cfg config.Config, logger *log.Logger) analysis.Provider {
	fallback := analysis.NewFallback()

	var primary analysis.Provider
	if cfg.Analysis.ProjectID != "" {
		gemini, err := analysis.NewGemini(ctx, cfg.Analysis.ProjectID, cfg.Analysis.Location, cfg.Analysis.Model, logger)
		if err != nil {
			logger.Printf("[Analysis] vertex ai unavailable, using fallback: %v", err)
		} else {
			primary = gemini
		}
	} else {
		logger.Printf("[Analysis] PROJECT_ID not set, using fallback provider")
	}

	return analysis.NewResilient(primary, fallback, cfg.Analysis.Timeout, logger)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
