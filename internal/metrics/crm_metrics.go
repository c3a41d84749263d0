package metrics

import (
	"github.com/Dhoini/CRM-service/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CRMMetrics интерфейс для метрик CRM
type CRMMetrics interface {
	IncCustomerCreated()
	IncCustomerDeleted()
	IncOrderCreated(status string)
	IncOrderStatusChanged(status string)
	ObserveOrderAmount(amount float64)
	IncSearch(mode string)
}

type crmMetrics struct {
	log              *logger.Logger
	customersCreated prometheus.Counter
	customersDeleted prometheus.Counter
	ordersCreated    *prometheus.CounterVec
	ordersStatus     *prometheus.CounterVec
	orderAmount      prometheus.Histogram
	searches         *prometheus.CounterVec
}

// NewCRMMetrics создает новые метрики CRM
func NewCRMMetrics(registry *prometheus.Registry, log *logger.Logger) CRMMetrics {
	customersCreated := promauto.With(registry).NewCounter(
		prometheus.CounterOpts{
			Name: "crm_customers_created_total",
			Help: "The total number of created customers",
		},
	)

	customersDeleted := promauto.With(registry).NewCounter(
		prometheus.CounterOpts{
			Name: "crm_customers_deleted_total",
			Help: "The total number of deleted customers",
		},
	)

	ordersCreated := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_orders_created_total",
			Help: "The total number of created orders",
		},
		[]string{"status"},
	)

	ordersStatus := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_orders_status_changed_total",
			Help: "The total number of order status changes",
		},
		[]string{"status"},
	)

	orderAmount := promauto.With(registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crm_order_amount",
			Help:    "Order total amounts distribution",
			Buckets: prometheus.ExponentialBuckets(10, 10, 5), // 10, 100, 1000, 10000, 100000
		},
	)

	searches := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_customer_searches_total",
			Help: "The total number of customer searches by mode",
		},
		[]string{"mode"},
	)

	return &crmMetrics{
		log:              log,
		customersCreated: customersCreated,
		customersDeleted: customersDeleted,
		ordersCreated:    ordersCreated,
		ordersStatus:     ordersStatus,
		orderAmount:      orderAmount,
		searches:         searches,
	}
}

// IncCustomerCreated увеличивает счетчик созданных клиентов
func (m *crmMetrics) IncCustomerCreated() {
	m.customersCreated.Inc()
}

// IncCustomerDeleted увеличивает счетчик удаленных клиентов
func (m *crmMetrics) IncCustomerDeleted() {
	m.customersDeleted.Inc()
}

// IncOrderCreated увеличивает счетчик созданных заказов
func (m *crmMetrics) IncOrderCreated(status string) {
	m.ordersCreated.WithLabelValues(status).Inc()
}

// IncOrderStatusChanged увеличивает счетчик смен статуса
func (m *crmMetrics) IncOrderStatusChanged(status string) {
	m.ordersStatus.WithLabelValues(status).Inc()
}

// ObserveOrderAmount записывает полную стоимость заказа
func (m *crmMetrics) ObserveOrderAmount(amount float64) {
	m.orderAmount.Observe(amount)
}

// IncSearch увеличивает счетчик поисковых запросов
func (m *crmMetrics) IncSearch(mode string) {
	m.searches.WithLabelValues(mode).Inc()
}
