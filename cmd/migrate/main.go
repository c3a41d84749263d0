package main

import (
	"context"
	"time"

	"github.com/Dhoini/CRM-service/internal/config"
	"github.com/Dhoini/CRM-service/internal/repository/postgres"
	"github.com/Dhoini/CRM-service/pkg/logger"
)

// Утилита применения схемы БД. Сервис применяет схему и сам при старте,
// но отдельная команда удобна для CI и ручного прогона.
func main() {
	log := logger.New(logger.INFO)

	cfg, err := config.LoadConfig(".env")
	if err != nil {
		log.Fatal("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewConnection(ctx, cfg.Database.DSN, log)
	if err != nil {
		log.Fatalw("Failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalw("Failed to apply database schema", "error", err)
	}

	log.Infow("Database schema applied successfully")
}
