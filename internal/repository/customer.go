package repository

import (
	"context"

	"github.com/Dhoini/CRM-service/internal/domain"
	"github.com/google/uuid"
)

// CustomerFilter параметры выборки клиентов.
// Query ищется как подстрока в фамилии, имени, телефоне и email (OR, без учета регистра).
// Date, если задана, отбирает клиентов с точным совпадением даты регистрации.
// Offset/Limit задают страницу; Limit <= 0 означает "без ограничения".
type CustomerFilter struct {
	Query  string
	Date   *domain.Date
	Offset int
	Limit  int
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	Create(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error)
	Update(ctx context.Context, customer domain.Customer) error
	// Delete удаляет клиента и все его заказы в одной транзакции.
	Delete(ctx context.Context, id uuid.UUID) error
	// Search возвращает страницу клиентов по фильтру и общее число совпадений.
	// Порядок: фамилия, затем имя по возрастанию.
	Search(ctx context.Context, filter CustomerFilter) ([]domain.Customer, int, error)
	// QuickSearch возвращает проекции для автодополнения, не более limit.
	QuickSearch(ctx context.Context, query string, limit int) ([]domain.CustomerSummary, error)
	// ListByRegistration возвращает клиентов с датой регистрации в диапазоне
	// [from, to] включительно; nil-граница означает отсутствие ограничения.
	ListByRegistration(ctx context.Context, from, to *domain.Date) ([]domain.Customer, error)
}
