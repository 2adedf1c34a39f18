package main

// @title Accessibility Map API
// @version 1.0.0
// @description Сервис карты доступности для людей на колясках. Отдаёт точки доступности (лифты, пандусы, доступные входы и туалеты) из OpenStreetMap через кеш вьюпорта сессии и точки, добавленные пользователями.
// @description
// @description Основные возможности:
// @description - Сессии карты с кешем видимой области
// @description - Точки доступности во вьюпорте с фильтром по категориям
// @description - Ближайшие точки с пешим временем Mapbox
// @description - Добавление точек пользователями

// @contact.name API Support
// @contact.email support@accessibility-map.org

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/accessibility-map/docs"
	"github.com/accessibility-map/internal/config"
	httpDelivery "github.com/accessibility-map/internal/delivery/http"
	"github.com/accessibility-map/internal/delivery/http/handler"
	"github.com/accessibility-map/internal/domain"
	"github.com/accessibility-map/internal/domain/repository"
	"github.com/accessibility-map/internal/infrastructure/mapbox"
	"github.com/accessibility-map/internal/infrastructure/overpass"
	"github.com/accessibility-map/internal/pkg/logger"
	"github.com/accessibility-map/internal/repository/cache"
	"github.com/accessibility-map/internal/repository/postgres"
	redisrepo "github.com/accessibility-map/internal/repository/redis"
	"github.com/accessibility-map/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Accessibility Map")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("overpass_url", cfg.Overpass.BaseURL),
		zap.Duration("session_idle_ttl", cfg.Session.IdleTTL),
	)

	// 3. Connect to PostgreSQL (точки пользователей)
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// 5. Initialize Repositories
	localPointRepo := postgres.NewLocalPointRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	notificationRepo := redisrepo.NewNotificationRepository(redisClient.Client(), cfg.Notifications.StreamMaxLen, log)
	geodataRepo := overpass.NewOverpassClient(&cfg.Overpass, log)

	var mapboxRepo repository.MapboxRepository
	if cfg.Mapbox.AccessToken != "" {
		mapboxRepo = mapbox.NewMapboxClient(&cfg.Mapbox, log)
	} else {
		log.Warn("MAPBOX_ACCESS_TOKEN is not set, nearest features use straight-line distance only")
	}

	log.Info("Repositories initialized")

	// 6. Notifications
	var sink usecase.NotificationSink = usecase.NewLogNotifier(log)
	if cfg.Notifications.StreamEnabled {
		sink = usecase.MultiNotifier{
			sink,
			usecase.NewStreamNotifier(notificationRepo, domain.StreamNotificationsToast, log),
		}
	}

	// 7. Initialize Use Cases
	sessions := usecase.NewSessionRegistry(
		cfg.Session.IdleTTL,
		cfg.Session.CleanupInterval,
		func(sessionID string) *usecase.ViewportCache {
			return usecase.NewViewportCache(geodataRepo, sink, log, usecase.WithSessionID(sessionID))
		},
		log,
	)

	accessibilityUC := usecase.NewAccessibilityUseCase(
		sessions,
		localPointRepo,
		mapboxRepo,
		cacheRepo,
		log,
		cfg.Session.IdleTTL,
		cfg.Cache.MatrixCacheTTL,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	sessionHandler := handler.NewSessionHandler(accessibilityUC, log)
	featureHandler := handler.NewFeatureHandler(accessibilityUC, log)
	pointHandler := handler.NewPointHandler(accessibilityUC, log)

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		sessionHandler,
		featureHandler,
		pointHandler,
		map[string]httpDelivery.HealthCheck{
			"database": db.Health,
			"redis":    redisClient.Health,
		},
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close database", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully",
		zap.Int("open_sessions", sessions.Count()))
}
