package memory

import (
	"context"
	"sort"

	"github.com/Dhoini/CRM-service/internal/domain"
	"github.com/Dhoini/CRM-service/internal/repository"
	"github.com/google/uuid"
)

// CustomerRepository in-memory реализация репозитория клиентов
type CustomerRepository struct {
	store *Store
}

// NewCustomerRepository создает in-memory репозиторий клиентов
func NewCustomerRepository(store *Store) *CustomerRepository {
	return &CustomerRepository{store: store}
}

// Create сохраняет нового клиента
func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.customers[customer.ID]; exists {
		return domain.Customer{}, repository.ErrDuplicate
	}

	r.store.customers[customer.ID] = customer
	return customer, nil
}

// GetByID возвращает клиента или ErrNotFound
func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	customer, ok := r.store.customers[id]
	if !ok {
		return domain.Customer{}, repository.ErrNotFound
	}
	return customer, nil
}

// Update перезаписывает существующего клиента
func (r *CustomerRepository) Update(ctx context.Context, customer domain.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.customers[customer.ID]; !ok {
		return repository.ErrNotFound
	}

	r.store.customers[customer.ID] = customer
	return nil
}

// Delete удаляет клиента вместе со всеми его заказами
func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.customers[id]; !ok {
		return repository.ErrNotFound
	}

	delete(r.store.customers, id)
	for orderID, order := range r.store.orders {
		if order.CustomerID == id {
			delete(r.store.orders, orderID)
		}
	}
	return nil
}

func sortCustomers(customers []domain.Customer) {
	sort.Slice(customers, func(i, j int) bool {
		if customers[i].LastName != customers[j].LastName {
			return customers[i].LastName < customers[j].LastName
		}
		return customers[i].FirstName < customers[j].FirstName
	})
}

// Search возвращает страницу клиентов по фильтру и общее число совпадений
func (r *CustomerRepository) Search(ctx context.Context, filter repository.CustomerFilter) ([]domain.Customer, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]domain.Customer, 0, len(r.store.customers))
	for _, customer := range r.store.customers {
		if filter.Date != nil {
			if customer.RegistrationDate.Equal(*filter.Date) {
				matched = append(matched, customer)
			}
			continue
		}
		if customer.MatchesQuery(filter.Query) {
			matched = append(matched, customer)
		}
	}

	sortCustomers(matched)
	total := len(matched)

	if filter.Limit > 0 {
		if filter.Offset >= len(matched) {
			return []domain.Customer{}, total, nil
		}
		matched = matched[filter.Offset:]
		if len(matched) > filter.Limit {
			matched = matched[:filter.Limit]
		}
	}

	return matched, total, nil
}

// QuickSearch возвращает проекции клиентов для автодополнения
func (r *CustomerRepository) QuickSearch(ctx context.Context, query string, limit int) ([]domain.CustomerSummary, error) {
	customers, _, err := r.Search(ctx, repository.CustomerFilter{Query: query, Limit: limit})
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.CustomerSummary, 0, len(customers))
	for _, customer := range customers {
		summaries = append(summaries, customer.Summary())
	}
	return summaries, nil
}

// ListByRegistration возвращает клиентов с датой регистрации в диапазоне [from, to]
func (r *CustomerRepository) ListByRegistration(ctx context.Context, from, to *domain.Date) ([]domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]domain.Customer, 0, len(r.store.customers))
	for _, customer := range r.store.customers {
		if from != nil && customer.RegistrationDate.Time.Before(from.Time) {
			continue
		}
		if to != nil && customer.RegistrationDate.Time.After(to.Time) {
			continue
		}
		matched = append(matched, customer)
	}

	sortCustomers(matched)
	return matched, nil
}
