package postgres

import (
	"context"
	"fmt"

	"github.com/Dhoini/CRM-service/internal/domain"
	"github.com/Dhoini/CRM-service/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStatsRepository сводная статистика через PostgreSQL
type PostgresStatsRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewPostgresStatsRepository создает новый репозиторий статистики через PostgreSQL
func NewPostgresStatsRepository(db *pgxpool.Pool, log *logger.Logger) *PostgresStatsRepository {
	return &PostgresStatsRepository{
		db:  db,
		log: log,
	}
}

// Statistics возвращает сводные счетчики одним запросом
func (r *PostgresStatsRepository) Statistics(ctx context.Context) (domain.Statistics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM customers WHERE registration_date = CURRENT_DATE),
			(SELECT COUNT(*) FROM orders WHERE order_date = CURRENT_DATE),
			(SELECT COALESCE(SUM(quantity * price), 0) FROM orders)
	`

	var stats domain.Statistics
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalCustomers,
		&stats.TotalOrders,
		&stats.CustomersToday,
		&stats.OrdersToday,
		&stats.TotalRevenue,
	)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("failed to query statistics: %w", err)
	}

	return stats, nil
}
