package rest

import (
	"github.com/Dhoini/CRM-service/internal/api/rest/handlers"
	"github.com/Dhoini/CRM-service/internal/api/rest/middleware"
	"github.com/Dhoini/CRM-service/internal/service"
	"github.com/Dhoini/CRM-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter настраивает маршрутизатор Gin с маршрутами и middleware
func SetupRouter(log *logger.Logger, registry *prometheus.Registry, customers service.CustomerService, orders service.OrderService, reports service.ReportService) *gin.Engine {
	r := gin.New()

	// Подключение middleware
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(gin.Recovery())

	// Endpoint для проверки работоспособности сервиса
	r.GET("/health", handlers.HealthCheck)

	// Prometheus метрики
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Инициализация обработчиков
	customerHandler := handlers.NewCustomerHandler(customers, log)
	orderHandler := handlers.NewOrderHandler(orders, log)
	reportHandler := handlers.NewReportHandler(reports, log)

	v1 := r.Group("/api/v1")
	{
		// Клиенты
		cs := v1.Group("/customers")
		{
			cs.GET("", customerHandler.GetCustomers)
			cs.GET("/:id", customerHandler.GetCustomer)
			cs.POST("", customerHandler.CreateCustomer)
			cs.PUT("/:id", customerHandler.UpdateCustomer)
			cs.DELETE("/:id", customerHandler.DeleteCustomer)

			// Заказы клиента
			cs.GET("/:id/orders", orderHandler.GetCustomerOrders)
			cs.POST("/:id/orders", orderHandler.CreateOrder)
		}

		// Заказы
		os := v1.Group("/orders")
		{
			os.PUT("/:id/status", orderHandler.UpdateOrderStatus)
			os.DELETE("/:id", orderHandler.DeleteOrder)
		}

		// Автодополнение для UI
		v1.GET("/search", customerHandler.QuickSearch)

		// Отчеты и статистика
		v1.GET("/reports", reportHandler.GetReport)
		v1.GET("/statistics", reportHandler.GetStatistics)
	}

	return r
}
