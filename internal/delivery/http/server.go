package http

import (
	"context"
	"time"

	"github.com/accessibility-map/internal/config"
	"github.com/accessibility-map/internal/delivery/http/handler"
	"github.com/accessibility-map/internal/delivery/http/middleware"
	"github.com/accessibility-map/internal/pkg/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// HealthCheck - проверка зависимости для /ready
type HealthCheck func(ctx context.Context) error

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	sessionHandler *handler.SessionHandler
	featureHandler *handler.FeatureHandler
	pointHandler   *handler.PointHandler

	checks map[string]HealthCheck
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	sessionHandler *handler.SessionHandler,
	featureHandler *handler.FeatureHandler,
	pointHandler *handler.PointHandler,
	checks map[string]HealthCheck,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Accessibility Map",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second, // Overpass может отвечать до 30с
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		sessionHandler: sessionHandler,
		featureHandler: featureHandler,
		pointHandler:   pointHandler,
		checks:         checks,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(metrics.Middleware())
	s.app.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", metrics.Handler())

	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})
	api.Get("/ready", s.ready)

	// Sessions
	api.Post("/sessions", s.sessionHandler.CreateSession)
	api.Delete("/sessions/:id", s.sessionHandler.DeleteSession)
	api.Post("/sessions/:id/reset", s.sessionHandler.ResetSession)

	// Features
	api.Get("/sessions/:id/features", s.featureHandler.GetViewportFeatures)
	api.Post("/sessions/:id/features/nearest", s.featureHandler.GetNearestFeatures)

	// Community points
	api.Post("/points", s.pointHandler.ReportPoint)
	api.Get("/points/:id", s.pointHandler.GetPoint)
}

// ready проверяет БД и Redis
func (s *Server) ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	results := make(map[string]string, len(s.checks))
	ok := true
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			results[name] = "error: " + err.Error()
			ok = false
			continue
		}
		results[name] = "ok"
	}

	if !ok {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "not ready",
			"checks": results,
		})
	}
	return c.JSON(fiber.Map{
		"status": "ready",
		"checks": results,
	})
}

// App - доступ к fiber.App (для тестов)
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			if code == fiber.StatusNotFound {
				errCode = "NOT_FOUND"
			}
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errCode,
				"message": err.Error(),
			},
		})
	}
}
