package rest_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dhoini/CRM-service/internal/api/rest"
	"github.com/Dhoini/CRM-service/internal/domain"
	"github.com/Dhoini/CRM-service/internal/kafka"
	"github.com/Dhoini/CRM-service/internal/metrics"
	"github.com/Dhoini/CRM-service/internal/repository/memory"
	"github.com/Dhoini/CRM-service/internal/service"
	"github.com/Dhoini/CRM-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	log := logger.New(logger.ERROR)
	store := memory.NewStore()
	customerRepo := memory.NewCustomerRepository(store)
	orderRepo := memory.NewOrderRepository(store)
	statsRepo := memory.NewStatsRepository(store)

	registry := prometheus.NewRegistry()
	m := metrics.NewCRMMetrics(registry, log)
	producer := kafka.NopProducer{}

	customers := service.NewCustomerService(customerRepo, producer, m, log)
	orders := service.NewOrderService(orderRepo, customerRepo, producer, m, log)
	reports := service.NewReportService(customerRepo, orderRepo, statsRepo, log)

	return rest.SetupRouter(log, registry, customers, orders, reports)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func createTestCustomer(t *testing.T, router *gin.Engine) domain.Customer {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/customers", domain.CustomerRequest{
		LastName:         "Иванов",
		FirstName:        "Иван",
		Phone:            "+7-900-123-45-67",
		Email:            "ivanov@mail.ru",
		RegistrationDate: "2024-01-10",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var customer domain.Customer
	decodeBody(t, w, &customer)
	return customer
}

func TestRouter_CustomerLifecycle(t *testing.T) {
	router := newTestRouter()
	customer := createTestCustomer(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/v1/customers/"+customer.ID.String(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var fetched domain.Customer
	decodeBody(t, w, &fetched)
	if fetched.Email != "ivanov@mail.ru" || fetched.RegistrationDate.String() != "2024-01-10" {
		t.Fatalf("unexpected customer payload: %+v", fetched)
	}

	w = doJSON(t, router, http.MethodPut, "/api/v1/customers/"+customer.ID.String(), domain.CustomerRequest{
		LastName:  "Иванов",
		FirstName: "Петр",
		Email:     "ivanov@mail.ru",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	decodeBody(t, w, &fetched)
	if fetched.FirstName != "Петр" {
		t.Fatalf("update did not apply: %+v", fetched)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/v1/customers/"+customer.ID.String(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/customers/"+customer.ID.String(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestRouter_CreateCustomerValidation(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/customers", domain.CustomerRequest{
		FirstName: "Иван",
		Email:     "not-an-email",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Error  string                   `json:"error"`
		Fields []domain.ValidationError `json:"fields"`
	}
	decodeBody(t, w, &resp)
	if resp.Error == "" {
		t.Fatal("error message must be present")
	}
	fields := map[string]bool{}
	for _, f := range resp.Fields {
		fields[f.Field] = true
	}
	if !fields["last_name"] || !fields["email"] {
		t.Fatalf("expected last_name and email violations, got %+v", resp.Fields)
	}
}

func TestRouter_GetUnknownCustomer(t *testing.T) {
	router := newTestRouter()

	// Невалидный UUID и валидный, но отсутствующий
	for _, id := range []string{"not-a-uuid", "9b2de1c0-4f5a-4d7e-8f3b-1a2b3c4d5e6f"} {
		w := doJSON(t, router, http.MethodGet, "/api/v1/customers/"+id, nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("id %q: expected 404, got %d", id, w.Code)
		}
	}
}

func TestRouter_OrderEndpoints(t *testing.T) {
	router := newTestRouter()
	customer := createTestCustomer(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/customers/"+customer.ID.String()+"/orders", domain.OrderRequest{
		ProductName: "Ноутбук",
		Quantity:    2,
		Price:       45000.50,
		OrderDate:   "2024-03-01",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var order domain.Order
	decodeBody(t, w, &order)
	if order.Status != domain.OrderStatusActive {
		t.Fatalf("expected default active status, got %q", order.Status)
	}

	w = doJSON(t, router, http.MethodPut, "/api/v1/orders/"+order.ID.String()+"/status", gin.H{"status": "shipped"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPut, "/api/v1/orders/"+order.ID.String()+"/status", gin.H{"status": "completed"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	decodeBody(t, w, &order)
	if order.Status != domain.OrderStatusCompleted {
		t.Fatalf("status update did not apply: %+v", order)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/customers/"+customer.ID.String()+"/orders", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var orders []domain.Order
	decodeBody(t, w, &orders)
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}

	w = doJSON(t, router, http.MethodDelete, "/api/v1/orders/"+order.ID.String(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRouter_SearchAndPagination(t *testing.T) {
	router := newTestRouter()

	surnames := []string{"Иванов", "Петров", "Сидоров"}
	for i, surname := range surnames {
		w := doJSON(t, router, http.MethodPost, "/api/v1/customers", domain.CustomerRequest{
			LastName:         surname,
			FirstName:        "Тест",
			Email:            fmt.Sprintf("user%d@example.com", i),
			RegistrationDate: "2024-02-15",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("seed %s: expected 201, got %d", surname, w.Code)
		}
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/customers?search=петров", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var page service.CustomerPage
	decodeBody(t, w, &page)
	if page.Total != 1 || len(page.Customers) != 1 {
		t.Fatalf("expected single match, got total=%d len=%d", page.Total, len(page.Customers))
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/customers?search=2024-02-15&mode=date", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	decodeBody(t, w, &page)
	if page.Total != 3 {
		t.Fatalf("expected 3 matches by date, got %d", page.Total)
	}

	// Некорректная дата деградирует до полного списка с предупреждением
	w = doJSON(t, router, http.MethodGet, "/api/v1/customers?search=15.02.2024&mode=date", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	decodeBody(t, w, &page)
	if page.Total != 3 || len(page.Warnings) == 0 {
		t.Fatalf("expected degraded result with warnings, got total=%d warnings=%v", page.Total, page.Warnings)
	}
}

func TestRouter_QuickSearch(t *testing.T) {
	router := newTestRouter()
	createTestCustomer(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/v1/search?q=иванов", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var summaries []domain.CustomerSummary
	decodeBody(t, w, &summaries)
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].Name != "Иванов Иван" {
		t.Fatalf("unexpected summary name: %q", summaries[0].Name)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/search", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	decodeBody(t, w, &summaries)
	if len(summaries) != 0 {
		t.Fatalf("empty query must return no suggestions, got %d", len(summaries))
	}
}

func TestRouter_ReportsAndStatistics(t *testing.T) {
	router := newTestRouter()
	customer := createTestCustomer(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/customers/"+customer.ID.String()+"/orders", domain.OrderRequest{
		ProductName: "Монитор",
		Quantity:    1,
		Price:       250,
		OrderDate:   "2024-03-01",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/reports?start_date=2024-01-01&end_date=2024-12-31", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var report domain.Report
	decodeBody(t, w, &report)
	if report.CustomerCount != 1 || report.OrderCount != 1 || report.TotalRevenue != 250 {
		t.Fatalf("unexpected report: %+v", report)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/statistics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var stats domain.Statistics
	decodeBody(t, w, &stats)
	if stats.TotalCustomers != 1 || stats.TotalOrders != 1 || stats.TotalRevenue != 250 {
		t.Fatalf("unexpected statistics: %+v", stats)
	}
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
