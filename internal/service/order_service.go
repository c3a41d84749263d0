package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dhoini/CRM-service/internal/domain"
	"github.com/Dhoini/CRM-service/internal/kafka"
	"github.com/Dhoini/CRM-service/internal/metrics"
	"github.com/Dhoini/CRM-service/internal/repository"
	"github.com/Dhoini/CRM-service/pkg/logger"
	"github.com/google/uuid"
)

// OrderService интерфейс сервиса для работы с заказами
type OrderService interface {
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	Create(ctx context.Context, customerID string, req domain.OrderRequest) (domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (domain.Order, error)
	Delete(ctx context.Context, orderID string) error
}

type orderService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	producer  kafka.Producer
	metrics   metrics.CRMMetrics
	log       *logger.Logger
}

// NewOrderService создает новый сервис для работы с заказами
func NewOrderService(orders repository.OrderRepository, customers repository.CustomerRepository, producer kafka.Producer, m metrics.CRMMetrics, log *logger.Logger) OrderService {
	return &orderService{
		orders:    orders,
		customers: customers,
		producer:  producer,
		metrics:   m,
		log:       log,
	}
}

func parseOrderID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.NewNotFoundError("order", id)
	}
	return parsed, nil
}

// validateOrder проверяет поля заказа и разбирает дату и статус.
// Пустая дата означает "сегодня", пустой статус — статус по умолчанию.
func validateOrder(req domain.OrderRequest) (domain.Date, domain.OrderStatus, domain.ValidationErrors) {
	var verr domain.ValidationErrors

	if strings.TrimSpace(req.ProductName) == "" {
		verr.Add("product_name", "product name is required")
	}
	if req.Quantity <= 0 {
		verr.Add("quantity", "quantity must be a positive number")
	}
	if req.Price < 0 {
		verr.Add("price", "price must not be negative")
	}

	status := domain.OrderStatusActive
	if req.Status != "" {
		status = domain.OrderStatus(req.Status)
		if !status.IsValid() {
			verr.Add("status", fmt.Sprintf("status must be one of: %v", domain.OrderStatuses()))
		}
	}

	orderDate := domain.Today()
	if req.OrderDate != "" {
		parsed, err := domain.ParseDate(req.OrderDate)
		if err != nil {
			verr.Add("order_date", err.Error())
		} else {
			orderDate = parsed
		}
	}

	return orderDate, status, verr
}

func (s *orderService) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	s.log.Debug("Listing orders for customer: %s", customerID)

	id, err := parseCustomerID(customerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.customers.GetByID(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return nil, domain.NewNotFoundError("customer", customerID)
		}
		return nil, domain.NewStorageError("customer get", err)
	}

	orders, err := s.orders.ListByCustomer(ctx, id)
	if err != nil {
		return nil, domain.NewStorageError("order list", err)
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *orderService) Create(ctx context.Context, customerID string, req domain.OrderRequest) (domain.Order, error) {
	s.log.Debug("Creating order for customer: %s", customerID)

	id, err := parseCustomerID(customerID)
	if err != nil {
		return domain.Order{}, err
	}

	orderDate, status, verr := validateOrder(req)
	if verr.HasErrors() {
		return domain.Order{}, verr
	}

	if _, err := s.customers.GetByID(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return domain.Order{}, domain.NewNotFoundError("customer", customerID)
		}
		return domain.Order{}, domain.NewStorageError("customer get", err)
	}

	order := domain.Order{
		ID:          uuid.New(),
		CustomerID:  id,
		OrderDate:   orderDate,
		ProductName: strings.TrimSpace(req.ProductName),
		Quantity:    req.Quantity,
		Price:       req.Price,
		Status:      status,
		Notes:       strings.TrimSpace(req.Notes),
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		// Клиент мог быть удален между проверкой и вставкой
		if err == repository.ErrNotFound {
			return domain.Order{}, domain.NewNotFoundError("customer", customerID)
		}
		return domain.Order{}, domain.NewStorageError("order create", err)
	}

	s.metrics.IncOrderCreated(string(created.Status))
	s.metrics.ObserveOrderAmount(created.TotalPrice())
	s.publishEvent(ctx, kafka.TopicOrderCreated, created.ID.String(), created)

	s.log.Info("Created order with ID: %s", created.ID)
	return created, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID, status string) (domain.Order, error) {
	s.log.Debug("Updating status of order %s to %q", orderID, status)

	id, err := parseOrderID(orderID)
	if err != nil {
		return domain.Order{}, err
	}

	newStatus := domain.OrderStatus(status)
	if !newStatus.IsValid() {
		var verr domain.ValidationErrors
		verr.Add("status", fmt.Sprintf("status must be one of: %v", domain.OrderStatuses()))
		return domain.Order{}, verr
	}

	if err := s.orders.UpdateStatus(ctx, id, newStatus); err != nil {
		if err == repository.ErrNotFound {
			return domain.Order{}, domain.NewNotFoundError("order", orderID)
		}
		return domain.Order{}, domain.NewStorageError("order status update", err)
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return domain.Order{}, domain.NewStorageError("order get", err)
	}

	s.metrics.IncOrderStatusChanged(status)
	s.publishEvent(ctx, kafka.TopicOrderStatusChanged, orderID, order)

	s.log.Info("Updated order %s status to %q", orderID, status)
	return order, nil
}

func (s *orderService) Delete(ctx context.Context, orderID string) error {
	s.log.Debug("Deleting order with ID: %s", orderID)

	id, err := parseOrderID(orderID)
	if err != nil {
		return err
	}

	if err := s.orders.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return domain.NewNotFoundError("order", orderID)
		}
		return domain.NewStorageError("order delete", err)
	}

	s.publishEvent(ctx, kafka.TopicOrderDeleted, orderID, map[string]string{"id": orderID})

	s.log.Info("Deleted order with ID: %s", orderID)
	return nil
}

// publishEvent отправляет событие в Kafka; сбой публикации не ломает операцию
func (s *orderService) publishEvent(ctx context.Context, topic, key string, payload interface{}) {
	if err := s.producer.PublishEvent(ctx, topic, key, payload); err != nil {
		s.log.Warnw("Failed to publish order event", "topic", topic, "key", key, "error", err)
	}
}
