package repository

import (
	"context"

	"github.com/Dhoini/CRM-service/internal/domain"
	"github.com/google/uuid"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	// Create сохраняет заказ; возвращает ErrNotFound, если клиент не существует.
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByCustomer возвращает заказы клиента по дате заказа по убыванию.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error)
}
