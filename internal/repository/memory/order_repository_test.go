package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/Dhoini/CRM-service/internal/domain"
	"github.com/Dhoini/CRM-service/internal/repository"
	"github.com/Dhoini/CRM-service/internal/repository/memory"
	"github.com/google/uuid"
)

func newOrder(customerID uuid.UUID, orderDate string, price float64) domain.Order {
	date, _ := domain.ParseDate(orderDate)
	return domain.Order{
		ID:          uuid.New(),
		CustomerID:  customerID,
		OrderDate:   date,
		ProductName: "Телефон",
		Quantity:    2,
		Price:       price,
		Status:      domain.OrderStatusActive,
		CreatedAt:   time.Now().UTC(),
	}
}

func seedCustomer(t *testing.T, store *memory.Store) domain.Customer {
	t.Helper()
	customer := newCustomer("Иванов", "Иван", "", "2024-01-10")
	if _, err := memory.NewCustomerRepository(store).Create(context.Background(), customer); err != nil {
		t.Fatalf("seed customer failed: %v", err)
	}
	return customer
}

func TestOrderRepository_CreateRequiresCustomer(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewOrderRepository(store)
	ctx := context.Background()

	order := newOrder(uuid.New(), "2024-03-01", 100)
	if _, err := repo.Create(ctx, order); err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing customer, got %v", err)
	}

	if _, err := repo.GetByID(ctx, order.ID); err != repository.ErrNotFound {
		t.Fatal("no order row must be created")
	}
}

func TestOrderRepository_ListByCustomerOrdering(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewOrderRepository(store)
	ctx := context.Background()
	customer := seedCustomer(t, store)

	older := newOrder(customer.ID, "2024-01-05", 100)
	newer := newOrder(customer.ID, "2024-03-01", 200)
	for _, o := range []domain.Order{older, newer} {
		if _, err := repo.Create(ctx, o); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	orders, err := repo.ListByCustomer(ctx, customer.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	// Порядок: по дате заказа по убыванию
	if orders[0].ID != newer.ID || orders[1].ID != older.ID {
		t.Fatal("orders must be sorted by order date descending")
	}
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewOrderRepository(store)
	ctx := context.Background()
	customer := seedCustomer(t, store)

	order := newOrder(customer.ID, "2024-03-01", 100)
	if _, err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.UpdateStatus(ctx, order.ID, domain.OrderStatusCompleted); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	stored, err := repo.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Status != domain.OrderStatusCompleted {
		t.Fatalf("expected status completed, got %q", stored.Status)
	}

	if err := repo.UpdateStatus(ctx, uuid.New(), domain.OrderStatusCompleted); err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderRepository_Delete(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewOrderRepository(store)
	ctx := context.Background()
	customer := seedCustomer(t, store)

	order := newOrder(customer.ID, "2024-03-01", 100)
	if _, err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.Delete(ctx, order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := repo.Delete(ctx, order.ID); err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStatsRepository_Statistics(t *testing.T) {
	store := memory.NewStore()
	customers := memory.NewCustomerRepository(store)
	orders := memory.NewOrderRepository(store)
	stats := memory.NewStatsRepository(store)
	ctx := context.Background()

	registeredToday := newCustomer("Иванов", "Иван", "", domain.Today().String())
	registeredEarlier := newCustomer("Петров", "Петр", "", "2024-01-10")
	for _, c := range []domain.Customer{registeredToday, registeredEarlier} {
		if _, err := customers.Create(ctx, c); err != nil {
			t.Fatalf("create customer failed: %v", err)
		}
	}

	todayOrder := newOrder(registeredToday.ID, domain.Today().String(), 150) // 2 x 150 = 300
	oldOrder := newOrder(registeredEarlier.ID, "2024-01-15", 50)             // 2 x 50 = 100
	for _, o := range []domain.Order{todayOrder, oldOrder} {
		if _, err := orders.Create(ctx, o); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	got, err := stats.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics failed: %v", err)
	}
	if got.TotalCustomers != 2 || got.TotalOrders != 2 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if got.CustomersToday != 1 || got.OrdersToday != 1 {
		t.Fatalf("unexpected today counts: %+v", got)
	}
	if got.TotalRevenue != 400 {
		t.Fatalf("expected revenue 400, got %v", got.TotalRevenue)
	}
}
