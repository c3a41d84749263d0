package service

import (
	"context"
	"strings"

	"github.com/Dhoini/CRM-service/internal/domain"
	"github.com/Dhoini/CRM-service/internal/repository"
	"github.com/Dhoini/CRM-service/pkg/logger"
)

// ReportService интерфейс сервиса отчетов и статистики
type ReportService interface {
	// Generate строит отчет по клиентам, зарегистрированным в диапазоне
	// [startDate, endDate] включительно. Некорректная граница диапазона
	// игнорируется, а причина возвращается в Report.Warnings.
	Generate(ctx context.Context, startDate, endDate string) (domain.Report, error)
	Statistics(ctx context.Context) (domain.Statistics, error)
}

type reportService struct {
	customers repository.CustomerRepository
	orders    repository.OrderRepository
	stats     repository.StatsRepository
	log       *logger.Logger
}

// NewReportService создает новый сервис отчетов
func NewReportService(customers repository.CustomerRepository, orders repository.OrderRepository, stats repository.StatsRepository, log *logger.Logger) ReportService {
	return &reportService{
		customers: customers,
		orders:    orders,
		stats:     stats,
		log:       log,
	}
}

func (s *reportService) Generate(ctx context.Context, startDate, endDate string) (domain.Report, error) {
	s.log.Debug("Generating report: start=%q end=%q", startDate, endDate)

	var report domain.Report
	var from, to *domain.Date

	if q := strings.TrimSpace(startDate); q != "" {
		parsed, err := domain.ParseDate(q)
		if err != nil {
			report.Warnings.Add("start_date", err.Error())
		} else {
			from = &parsed
		}
	}
	if q := strings.TrimSpace(endDate); q != "" {
		parsed, err := domain.ParseDate(q)
		if err != nil {
			report.Warnings.Add("end_date", err.Error())
		} else {
			to = &parsed
		}
	}

	customers, err := s.customers.ListByRegistration(ctx, from, to)
	if err != nil {
		return domain.Report{}, domain.NewStorageError("report customers", err)
	}

	if customers == nil {
		customers = []domain.Customer{}
	}
	report.Customers = customers
	report.CustomerCount = len(customers)
	report.StartDate = from
	report.EndDate = to

	for _, customer := range customers {
		orders, err := s.orders.ListByCustomer(ctx, customer.ID)
		if err != nil {
			return domain.Report{}, domain.NewStorageError("report orders", err)
		}
		report.OrderCount += len(orders)
		for _, order := range orders {
			report.TotalRevenue += order.TotalPrice()
		}
	}

	return report, nil
}

func (s *reportService) Statistics(ctx context.Context) (domain.Statistics, error) {
	s.log.Debug("Getting statistics")

	stats, err := s.stats.Statistics(ctx)
	if err != nil {
		return domain.Statistics{}, domain.NewStorageError("statistics", err)
	}
	return stats, nil
}
