package rediscache

import (
	"context"
	"fmt"
	"time"

	"github.com/Dhoini/CRM-service/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Cache оборачивает Redis-клиент для кеширующих декораторов
type Cache struct {
	client *redis.Client
	log    *logger.Logger
}

// New создает новый Redis-кеш и проверяет соединение
func New(addr, password string, db int, log *logger.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Infow("Connected to Redis successfully", "addr", addr)
	return &Cache{
		client: client,
		log:    log,
	}, nil
}

// Close закрывает соединение с Redis
func (c *Cache) Close() error {
	return c.client.Close()
}
