package memory

import (
	"context"
	"sort"

	"github.com/Dhoini/CRM-service/internal/domain"
	"github.com/Dhoini/CRM-service/internal/repository"
	"github.com/google/uuid"
)

// OrderRepository in-memory реализация репозитория заказов
type OrderRepository struct {
	store *Store
}

// NewOrderRepository создает in-memory репозиторий заказов
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// Create сохраняет заказ; клиент должен существовать
func (r *OrderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.customers[order.CustomerID]; !ok {
		return domain.Order{}, repository.ErrNotFound
	}
	if _, exists := r.store.orders[order.ID]; exists {
		return domain.Order{}, repository.ErrDuplicate
	}

	r.store.orders[order.ID] = order
	return order, nil
}

// GetByID возвращает заказ или ErrNotFound
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	order, ok := r.store.orders[id]
	if !ok {
		return domain.Order{}, repository.ErrNotFound
	}
	return order, nil
}

// UpdateStatus обновляет статус заказа
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	order, ok := r.store.orders[id]
	if !ok {
		return repository.ErrNotFound
	}

	order.Status = status
	r.store.orders[id] = order
	return nil
}

// Delete удаляет заказ
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.orders[id]; !ok {
		return repository.ErrNotFound
	}

	delete(r.store.orders, id)
	return nil
}

// ListByCustomer возвращает заказы клиента по дате заказа по убыванию
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	orders := make([]domain.Order, 0)
	for _, order := range r.store.orders {
		if order.CustomerID == customerID {
			orders = append(orders, order)
		}
	}

	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].OrderDate.Equal(orders[j].OrderDate) {
			return orders[i].OrderDate.Time.After(orders[j].OrderDate.Time)
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}
