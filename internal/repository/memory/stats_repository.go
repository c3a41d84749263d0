package memory

import (
	"context"

	"github.com/Dhoini/CRM-service/internal/domain"
)

// StatsRepository in-memory реализация репозитория статистики
type StatsRepository struct {
	store *Store
}

// NewStatsRepository создает in-memory репозиторий статистики
func NewStatsRepository(store *Store) *StatsRepository {
	return &StatsRepository{store: store}
}

// Statistics считает сводные счетчики по текущему содержимому стора
func (r *StatsRepository) Statistics(ctx context.Context) (domain.Statistics, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	today := domain.Today()
	stats := domain.Statistics{
		TotalCustomers: len(r.store.customers),
		TotalOrders:    len(r.store.orders),
	}

	for _, customer := range r.store.customers {
		if customer.RegistrationDate.Equal(today) {
			stats.CustomersToday++
		}
	}
	for _, order := range r.store.orders {
		if order.OrderDate.Equal(today) {
			stats.OrdersToday++
		}
		stats.TotalRevenue += order.TotalPrice()
	}

	return stats, nil
}
