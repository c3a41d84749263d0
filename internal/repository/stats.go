package repository

import (
	"context"

	"github.com/Dhoini/CRM-service/internal/domain"
)

// StatsRepository интерфейс для сводной статистики по базе
type StatsRepository interface {
	Statistics(ctx context.Context) (domain.Statistics, error)
}
