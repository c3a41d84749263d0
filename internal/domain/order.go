package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus статус заказа
type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "active"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses возвращает полный набор допустимых статусов
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusActive, OrderStatusCompleted, OrderStatusCancelled}
}

// IsValid проверяет, входит ли статус в допустимый набор
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusActive, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order представляет собой модель заказа клиента
type Order struct {
	ID          uuid.UUID   `json:"id"`
	CustomerID  uuid.UUID   `json:"customer_id"`
	OrderDate   Date        `json:"order_date"`
	ProductName string      `json:"product_name"`
	Quantity    int         `json:"quantity"`
	Price       float64     `json:"price"`
	Status      OrderStatus `json:"status"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// TotalPrice возвращает полную стоимость заказа
func (o Order) TotalPrice() float64 {
	return float64(o.Quantity) * o.Price
}

// OrderRequest представляет запрос на создание заказа.
// Дата заказа передается строкой ГГГГ-ММ-ДД; пустая строка означает "сегодня".
// Пустой статус означает статус по умолчанию (active).
type OrderRequest struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	OrderDate   string  `json:"order_date"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
}
