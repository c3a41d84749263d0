package memory

import (
	"sync"

	"github.com/Dhoini/CRM-service/internal/domain"
	"github.com/google/uuid"
)

// Store хранит клиентов и заказы в памяти. Используется в тестах
// и при локальной разработке без PostgreSQL. Заказы и клиенты лежат
// в одном сторе, чтобы каскадное удаление оставалось атомарным.
type Store struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]domain.Customer
	orders    map[uuid.UUID]domain.Order
}

// NewStore создает пустой in-memory стор
func NewStore() *Store {
	return &Store{
		customers: make(map[uuid.UUID]domain.Customer),
		orders:    make(map[uuid.UUID]domain.Order),
	}
}
