package service_test

import (
	"context"
	"testing"

	"github.com/Dhoini/CRM-service/internal/domain"
)

func seedReportData(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()

	seed := []struct {
		lastName   string
		registered string
		orderPrice float64
	}{
		{"Иванов", "2024-01-10", 100},
		{"Петров", "2024-02-15", 200},
		{"Сидоров", "2024-03-20", 300},
	}
	for i, s := range seed {
		req := validCustomerRequest()
		req.LastName = s.lastName
		req.Email = s.lastName + "@example.com"
		req.Phone = "+7900000000" + string(rune('0'+i))
		req.RegistrationDate = s.registered

		customer, err := env.customers.Create(ctx, req)
		if err != nil {
			t.Fatalf("seed customer %s failed: %v", s.lastName, err)
		}

		order := validOrderRequest()
		order.Quantity = 1
		order.Price = s.orderPrice
		if _, err := env.orders.Create(ctx, customer.ID.String(), order); err != nil {
			t.Fatalf("seed order for %s failed: %v", s.lastName, err)
		}
	}
}

func TestReportService_GenerateInclusiveRange(t *testing.T) {
	env := newTestEnv()
	seedReportData(t, env)

	// Границы диапазона совпадают с датами регистрации первых двух клиентов
	report, err := env.reports.Generate(context.Background(), "2024-01-10", "2024-02-15")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if report.CustomerCount != 2 {
		t.Fatalf("expected 2 customers in range, got %d", report.CustomerCount)
	}
	if report.OrderCount != 2 {
		t.Fatalf("expected 2 orders in range, got %d", report.OrderCount)
	}
	if report.TotalRevenue != 300 {
		t.Fatalf("expected revenue 300, got %v", report.TotalRevenue)
	}
	if len(report.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", report.Warnings)
	}
}

func TestReportService_GenerateUnbounded(t *testing.T) {
	env := newTestEnv()
	seedReportData(t, env)

	report, err := env.reports.Generate(context.Background(), "", "")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if report.CustomerCount != 3 {
		t.Fatalf("expected all customers, got %d", report.CustomerCount)
	}
	if report.TotalRevenue != 600 {
		t.Fatalf("expected revenue 600, got %v", report.TotalRevenue)
	}
	if report.StartDate != nil || report.EndDate != nil {
		t.Fatal("unbounded report must not carry range boundaries")
	}
}

func TestReportService_GenerateDegradesOnMalformedDates(t *testing.T) {
	env := newTestEnv()
	seedReportData(t, env)

	report, err := env.reports.Generate(context.Background(), "10.01.2024", "2024-02-15")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if report.Warnings.GetByField("start_date") == "" {
		t.Fatalf("expected warning for start_date, got %v", report.Warnings)
	}
	// Нижняя граница отброшена, верхняя действует
	if report.CustomerCount != 2 {
		t.Fatalf("expected 2 customers with only the upper bound, got %d", report.CustomerCount)
	}

	report, err = env.reports.Generate(context.Background(), "junk", "also-junk")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if report.Warnings.GetByField("start_date") == "" || report.Warnings.GetByField("end_date") == "" {
		t.Fatalf("expected warnings for both bounds, got %v", report.Warnings)
	}
	if report.CustomerCount != 3 {
		t.Fatalf("fully degraded report must cover all customers, got %d", report.CustomerCount)
	}
}

func TestReportService_GenerateEmptyRange(t *testing.T) {
	env := newTestEnv()
	seedReportData(t, env)

	report, err := env.reports.Generate(context.Background(), "2025-01-01", "2025-12-31")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if report.CustomerCount != 0 || report.OrderCount != 0 || report.TotalRevenue != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
	if report.Customers == nil {
		t.Fatal("customers must be an empty slice, not nil")
	}
}

func TestReportService_Statistics(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedReportData(t, env)

	// Клиент и заказ с сегодняшней датой
	req := validCustomerRequest()
	req.Email = "today@example.com"
	req.RegistrationDate = domain.Today().String()
	customer, err := env.customers.Create(ctx, req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	order := validOrderRequest()
	order.Quantity = 1
	order.Price = 50
	order.OrderDate = domain.Today().String()
	if _, err := env.orders.Create(ctx, customer.ID.String(), order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	stats, err := env.reports.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics failed: %v", err)
	}
	if stats.TotalCustomers != 4 {
		t.Fatalf("expected 4 customers, got %d", stats.TotalCustomers)
	}
	if stats.TotalOrders != 4 {
		t.Fatalf("expected 4 orders, got %d", stats.TotalOrders)
	}
	if stats.CustomersToday != 1 || stats.OrdersToday != 1 {
		t.Fatalf("expected one customer and one order today, got %d/%d", stats.CustomersToday, stats.OrdersToday)
	}
	if stats.TotalRevenue != 650 {
		t.Fatalf("expected revenue 650, got %v", stats.TotalRevenue)
	}
}
