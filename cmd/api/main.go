package main

// @title Trip Planner API
// @version 1.0.0
// @description Сервис планирования автомобильных поездок с остановками на еду. Считает рекомендованное время выезда назад от желаемого прибытия, подбирает точки маршрута для окон приёма пищи и ранжирует заведения рядом с ними.
// @description
// @description Основные возможности:
// @description - Планирование поездки с окнами завтрака, обеда и ужина
// @description - Оценка крюка до кандидатов через матрицу длительностей OSRM
// @description - Персонализация ранжирования по сохранённому профилю пользователя
// @description - Архив построенных планов поездок

// @contact.name API Support

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

	"go.uber.org/zap"

	_ "github.com/trip-planner/docs"
	"github.com/trip-planner/internal/config"
	httpDelivery "github.com/trip-planner/internal/delivery/http"
	"github.com/trip-planner/internal/delivery/http/handler"
	"github.com/trip-planner/internal/infrastructure/osrm"
	"github.com/trip-planner/internal/infrastructure/overpass"
	"github.com/trip-planner/internal/pkg/logger"
	"github.com/trip-planner/internal/repository/cache"
	"github.com/trip-planner/internal/repository/postgres"
	redisRepo "github.com/trip-planner/internal/repository/redis"
	"github.com/trip-planner/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Trip Planner")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("osrm_base_url", cfg.OSRM.BaseURL),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Initialize Repositories
	routingRepo := osrm.NewOSRMClient(&cfg.OSRM, log)
	placesRepo := overpass.NewOverpassClient(&cfg.Overpass, log)
	preferenceRepo := postgres.NewPreferenceRepository(db)
	tripRepo := postgres.NewTripRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient, cfg.Cache.BaselineTTL)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	detourEstimator := usecase.NewDetourEstimator(
		routingRepo,
		cacheRepo,
		log,
		cfg.Planner.FallbackSpeedKmh,
	)

	tripUC := usecase.NewTripUseCase(
		routingRepo,
		placesRepo,
		preferenceRepo,
		tripRepo,
		streamRepo,
		detourEstimator,
		log,
		cfg.Planner,
	)

	preferenceUC := usecase.NewPreferenceUseCase(preferenceRepo, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	tripHandler := handler.NewTripHandler(tripUC, log)
	preferenceHandler := handler.NewPreferenceHandler(preferenceUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		tripHandler,
		preferenceHandler,
	)

	log.Info("HTTP server initialized")

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

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server shutdown complete")
}
