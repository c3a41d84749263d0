package service_test

import (
	"github.com/Dhoini/CRM-service/internal/kafka"
	"github.com/Dhoini/CRM-service/internal/metrics"
	"github.com/Dhoini/CRM-service/internal/repository/memory"
	"github.com/Dhoini/CRM-service/internal/service"
	"github.com/Dhoini/CRM-service/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
)

// testEnv собирает сервисы поверх in-memory стора
type testEnv struct {
	store     *memory.Store
	customers service.CustomerService
	orders    service.OrderService
	reports   service.ReportService
}

func newTestEnv() *testEnv {
	log := logger.New(logger.ERROR)
	store := memory.NewStore()
	customerRepo := memory.NewCustomerRepository(store)
	orderRepo := memory.NewOrderRepository(store)
	statsRepo := memory.NewStatsRepository(store)
	m := metrics.NewCRMMetrics(prometheus.NewRegistry(), log)
	producer := kafka.NopProducer{}

	return &testEnv{
		store:     store,
		customers: service.NewCustomerService(customerRepo, producer, m, log),
		orders:    service.NewOrderService(orderRepo, customerRepo, producer, m, log),
		reports:   service.NewReportService(customerRepo, orderRepo, statsRepo, log),
	}
}
