package server

import (
	"log/slog"

	"yellowduck-gpx/internal/auth"
	"yellowduck-gpx/internal/config"
	"yellowduck-gpx/internal/measure"
	"yellowduck-gpx/internal/metrics"
	"yellowduck-gpx/internal/stream"
	"yellowduck-gpx/internal/tracking"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	Redis    *redis.Client
	Stream   *stream.Hub
	Tracking *tracking.Service
}

func NewServer(cfg config.Config, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "gpx",
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	if cfg.MetricsEnabled {
		app.Use(metrics.Middleware())
	}

	hub := stream.NewHub(redisClient)
	s := &Server{
		App:      app,
		Cfg:      cfg,
		Redis:    redisClient,
		Stream:   hub,
		Tracking: tracking.NewService(hub),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if s.Cfg.MetricsEnabled {
		s.App.Get("/metrics", metrics.Handler())
	}

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	auth.RegisterRoutes(s.App.Group("/auth"), s.Cfg.JWTSecret)
	measure.RegisterRoutes(s.App.Group("/measure"))
	tracking.RegisterRoutes(s.App.Group("/tracking"), s.Tracking, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}

// errorHandler renders every error as {"error": message}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
