package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Dhoini/CRM-service/internal/domain"
	"github.com/Dhoini/CRM-service/internal/repository"
	"github.com/Dhoini/CRM-service/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	statisticsKey = "crm:statistics"

	// Статистика дешево устаревает: короткий TTL вместо инвалидации на запись
	statisticsTTL = 30 * time.Second
)

// CachedStatsRepository кеширующий декоратор над репозиторием статистики
type CachedStatsRepository struct {
	base  repository.StatsRepository
	cache *Cache
	log   *logger.Logger
}

// NewCachedStatsRepository создает кеширующий репозиторий статистики
func NewCachedStatsRepository(base repository.StatsRepository, cache *Cache, log *logger.Logger) *CachedStatsRepository {
	return &CachedStatsRepository{
		base:  base,
		cache: cache,
		log:   log,
	}
}

// Statistics возвращает статистику из кеша или из базового репозитория.
// Ошибки Redis не фатальны: при любой проблеме с кешем читаем базу.
func (r *CachedStatsRepository) Statistics(ctx context.Context) (domain.Statistics, error) {
	data, err := r.cache.client.Get(ctx, statisticsKey).Bytes()
	if err == nil {
		var stats domain.Statistics
		if err := json.Unmarshal(data, &stats); err == nil {
			r.log.Debugw("Statistics served from cache")
			return stats, nil
		}
		r.log.Warnw("Failed to unmarshal cached statistics, falling back to repository", "error", err)
	} else if err != redis.Nil {
		r.log.Warnw("Failed to read statistics from Redis", "error", err)
	}

	stats, err := r.base.Statistics(ctx)
	if err != nil {
		return domain.Statistics{}, err
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := r.cache.client.Set(ctx, statisticsKey, data, statisticsTTL).Err(); err != nil {
			r.log.Warnw("Failed to cache statistics in Redis", "error", err)
		}
	}

	return stats, nil
}
