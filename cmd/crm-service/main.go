package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dhoini/CRM-service/internal/api/rest"
	"github.com/Dhoini/CRM-service/internal/config"
	"github.com/Dhoini/CRM-service/internal/kafka"
	"github.com/Dhoini/CRM-service/internal/metrics"
	"github.com/Dhoini/CRM-service/internal/repository"
	"github.com/Dhoini/CRM-service/internal/repository/postgres"
	"github.com/Dhoini/CRM-service/internal/repository/rediscache"
	"github.com/Dhoini/CRM-service/internal/service"
	"github.com/Dhoini/CRM-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Загружаем конфигурацию
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		logger.New(logger.INFO).Fatal("Failed to load configuration: %v", err)
	}

	// Инициализируем логгер
	log := logger.New(logger.ParseLevel(cfg.Logging.Level))
	log.Infow("CRM service starting up...")

	// Устанавливаем режим Gin в зависимости от окружения
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Подключаемся к базе данных
	pool, err := postgres.NewConnection(ctx, cfg.Database.DSN, log)
	if err != nil {
		log.Fatalw("Failed to connect to database", "error", err)
	}
	defer pool.Close()

	// Схема идемпотентна, применяем ее при каждом старте
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalw("Failed to apply database schema", "error", err)
	}
	log.Infow("Database schema is up to date")

	// Инициализируем репозитории
	customerRepo := postgres.NewPostgresCustomerRepository(pool, log)
	orderRepo := postgres.NewPostgresOrderRepository(pool, log)

	var statsRepo repository.StatsRepository = postgres.NewPostgresStatsRepository(pool, log)

	// Инициализируем Redis кеш
	if cfg.Redis.Addr != "" {
		cache, err := rediscache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			// Не фатально, но предупреждаем
			log.Warnw("Failed to initialize Redis cache, continuing without caching", "error", err)
		} else {
			defer func() {
				if err := cache.Close(); err != nil {
					log.Errorw("Error closing Redis connection", "error", err)
				}
			}()
			statsRepo = rediscache.NewCachedStatsRepository(statsRepo, cache, log)
			log.Infow("Using cached statistics repository")
		}
	}

	// Инициализируем Kafka Producer
	var producer kafka.Producer = kafka.NopProducer{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer, err := kafka.NewProducer(cfg.Kafka.Brokers, log)
		if err != nil {
			log.Errorw("Failed to initialize Kafka producer, continuing without event publishing", "error", err)
		} else {
			producer = kafkaProducer
			defer func() {
				if err := kafkaProducer.Close(); err != nil {
					log.Errorw("Error closing Kafka producer", "error", err)
				}
			}()
		}
	}

	// Инициализируем метрики
	registry := prometheus.NewRegistry()
	crmMetrics := metrics.NewCRMMetrics(registry, log)

	// Инициализируем service layer
	customerService := service.NewCustomerService(customerRepo, producer, crmMetrics, log)
	orderService := service.NewOrderService(orderRepo, customerRepo, producer, crmMetrics, log)
	reportService := service.NewReportService(customerRepo, orderRepo, statsRepo, log)

	// Настраиваем маршруты и HTTP сервер
	router := rest.SetupRouter(log, registry, customerService, orderService, reportService)
	server := rest.NewServer(router, cfg, log)

	// Запускаем HTTP сервер в горутине
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalw("Failed to start HTTP server", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infow("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	} else {
		log.Infow("HTTP server gracefully stopped")
	}

	log.Infow("Cleanup finished. Goodbye!")
}
