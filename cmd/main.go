package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/shenikar/civic_alert_system/internal/config"
	"github.com/shenikar/civic_alert_system/internal/engine"
	v1 "github.com/shenikar/civic_alert_system/internal/handler/http/v1"
	"github.com/shenikar/civic_alert_system/internal/loadshedding"
	"github.com/shenikar/civic_alert_system/internal/queue"
	"github.com/shenikar/civic_alert_system/internal/repository"
	"github.com/shenikar/civic_alert_system/internal/service"
	syncctrl "github.com/shenikar/civic_alert_system/internal/sync"
	"github.com/shenikar/civic_alert_system/internal/ward"
	"github.com/shenikar/civic_alert_system/internal/weather"
	"github.com/shenikar/civic_alert_system/pkg/logger"
	"github.com/shenikar/civic_alert_system/pkg/postgres"
	redisclient "github.com/shenikar/civic_alert_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/civic_alert_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Civic Alert System API
// @version 1.0
// @description Community alert service: local incident reports, priority banners, ward lookup and load shedding status.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Загрузка статической геометрии округов и справочника представителей
	wardResolver, err := ward.NewResolverFromFiles(cfg.WardsGeoJSONPath, cfg.CouncilorsPath)
	if err != nil {
		log.Fatalf("Failed to load ward data: %v", err)
	}
	log.Info("Ward boundaries loaded")

	// Инициализация репозиториев и очереди отложенных репортов
	alertRepo := repository.NewAlertRepository(dbpool, redisClient)
	settingsRepo := repository.NewSettingsRepository(redisClient, log)
	pendingQueue := queue.NewRedisPendingQueue(redisClient, log)

	// Внешние клиенты: погодная сводка и статус отключений
	weatherClient := weather.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout, log)
	utilityClient := loadshedding.NewClient(cfg.ESPAPIKey, cfg.ESPTimeout, log)

	// Движок выбора приоритетного баннера и уведомлений
	priorityEngine := engine.NewEngine(cfg.PriorityRadiusKm, weatherClient, log)

	// Контроллер состояния связи; при старте сверяем очередь, оставшуюся
	// после прошлого запуска
	syncController := syncctrl.NewController(pendingQueue, alertRepo, log, true)
	if err := syncController.Reconcile(ctx); err != nil {
		log.WithError(err).Warn("Failed to reconcile pending alerts on startup")
	}

	// Инициализация сервисов
	alertService := service.NewAlertService(alertRepo, settingsRepo, priorityEngine, syncController, pendingQueue, log)
	utilityService := service.NewUtilityService(utilityClient, settingsRepo, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(alertService, utilityService, wardResolver, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
