package service

import (
	"context"
	"strings"
	"time"

	"github.com/Dhoini/CRM-service/internal/domain"
	"github.com/Dhoini/CRM-service/internal/kafka"
	"github.com/Dhoini/CRM-service/internal/metrics"
	"github.com/Dhoini/CRM-service/internal/repository"
	"github.com/Dhoini/CRM-service/pkg/logger"
	"github.com/google/uuid"
)

const (
	// SearchModeAll поиск подстрокой по фамилии, имени, телефону и email
	SearchModeAll = "all"
	// SearchModeDate поиск по точному совпадению даты регистрации
	SearchModeDate = "date"

	// DefaultPerPage размер страницы списка клиентов
	DefaultPerPage = 10

	// DefaultQuickSearchLimit максимум результатов автодополнения
	DefaultQuickSearchLimit = 10
)

// CustomerPage страница результатов поиска клиентов.
// Warnings заполняется, когда некорректный фильтр был проигнорирован.
type CustomerPage struct {
	Customers []domain.Customer       `json:"customers"`
	Total     int                     `json:"total"`
	Page      int                     `json:"page"`
	PerPage   int                     `json:"per_page"`
	Warnings  domain.ValidationErrors `json:"warnings,omitempty"`
}

// CustomerService интерфейс сервиса для работы с клиентами
type CustomerService interface {
	Search(ctx context.Context, query, mode string, page int) (CustomerPage, error)
	GetByID(ctx context.Context, id string) (domain.Customer, error)
	Create(ctx context.Context, req domain.CustomerRequest) (domain.Customer, error)
	Update(ctx context.Context, id string, req domain.CustomerRequest) (domain.Customer, error)
	Delete(ctx context.Context, id string) error
	QuickSearch(ctx context.Context, query string, limit int) ([]domain.CustomerSummary, error)
}

type customerService struct {
	repo     repository.CustomerRepository
	producer kafka.Producer
	metrics  metrics.CRMMetrics
	log      *logger.Logger
}

// NewCustomerService создает новый сервис для работы с клиентами
func NewCustomerService(repo repository.CustomerRepository, producer kafka.Producer, m metrics.CRMMetrics, log *logger.Logger) CustomerService {
	return &customerService{
		repo:     repo,
		producer: producer,
		metrics:  m,
		log:      log,
	}
}

// parseCustomerID разбирает идентификатор клиента. Идентификатор,
// который не является UUID, не может ссылаться на существующего клиента.
func parseCustomerID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.NewNotFoundError("customer", id)
	}
	return parsed, nil
}

// validateCustomer проверяет поля запроса и разбирает дату регистрации.
// Пустая дата означает "сегодня".
func validateCustomer(req domain.CustomerRequest) (domain.Date, domain.ValidationErrors) {
	var verr domain.ValidationErrors

	if strings.TrimSpace(req.LastName) == "" {
		verr.Add("last_name", "last name is required")
	}
	if strings.TrimSpace(req.FirstName) == "" {
		verr.Add("first_name", "first name is required")
	}
	if email := strings.TrimSpace(req.Email); email != "" && !strings.Contains(email, "@") {
		verr.Add("email", "email must contain @")
	}

	registrationDate := domain.Today()
	if req.RegistrationDate != "" {
		parsed, err := domain.ParseDate(req.RegistrationDate)
		if err != nil {
			verr.Add("registration_date", err.Error())
		} else {
			registrationDate = parsed
		}
	}

	return registrationDate, verr
}

func (s *customerService) Search(ctx context.Context, query, mode string, page int) (CustomerPage, error) {
	s.log.Debug("Searching customers: query=%q mode=%q page=%d", query, mode, page)

	if mode == "" {
		mode = SearchModeAll
	}
	if page < 1 {
		page = 1
	}

	var warnings domain.ValidationErrors
	filter := repository.CustomerFilter{
		Offset: (page - 1) * DefaultPerPage,
		Limit:  DefaultPerPage,
	}

	switch mode {
	case SearchModeAll:
		filter.Query = strings.TrimSpace(query)
	case SearchModeDate:
		if q := strings.TrimSpace(query); q != "" {
			date, err := domain.ParseDate(q)
			if err != nil {
				// Некорректная дата не фатальна: фильтр игнорируется,
				// а причина возвращается вместе с результатом.
				warnings.Add("search", err.Error())
			} else {
				filter.Date = &date
			}
		}
	default:
		var verr domain.ValidationErrors
		verr.Add("mode", "search mode must be one of: all, date")
		return CustomerPage{}, verr
	}

	customers, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return CustomerPage{}, domain.NewStorageError("customer search", err)
	}

	if customers == nil {
		customers = []domain.Customer{}
	}

	s.metrics.IncSearch(mode)
	return CustomerPage{
		Customers: customers,
		Total:     total,
		Page:      page,
		PerPage:   DefaultPerPage,
		Warnings:  warnings,
	}, nil
}

func (s *customerService) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	s.log.Debug("Getting customer by ID: %s", id)

	customerID, err := parseCustomerID(id)
	if err != nil {
		return domain.Customer{}, err
	}

	customer, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		if err == repository.ErrNotFound {
			return domain.Customer{}, domain.NewNotFoundError("customer", id)
		}
		return domain.Customer{}, domain.NewStorageError("customer get", err)
	}

	return customer, nil
}

func (s *customerService) Create(ctx context.Context, req domain.CustomerRequest) (domain.Customer, error) {
	s.log.Debug("Creating customer: %s %s", req.LastName, req.FirstName)

	registrationDate, verr := validateCustomer(req)
	if verr.HasErrors() {
		return domain.Customer{}, verr
	}

	customer := domain.Customer{
		ID:               uuid.New(),
		LastName:         strings.TrimSpace(req.LastName),
		FirstName:        strings.TrimSpace(req.FirstName),
		MiddleName:       strings.TrimSpace(req.MiddleName),
		Phone:            strings.TrimSpace(req.Phone),
		Email:            strings.TrimSpace(req.Email),
		RegistrationDate: registrationDate,
		Notes:            strings.TrimSpace(req.Notes),
		CreatedAt:        time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return domain.Customer{}, domain.NewStorageError("customer create", err)
	}

	s.metrics.IncCustomerCreated()
	s.publishEvent(ctx, kafka.TopicCustomerCreated, created.ID.String(), created)

	s.log.Info("Created customer with ID: %s", created.ID)
	return created, nil
}

func (s *customerService) Update(ctx context.Context, id string, req domain.CustomerRequest) (domain.Customer, error) {
	s.log.Debug("Updating customer with ID: %s", id)

	customerID, err := parseCustomerID(id)
	if err != nil {
		return domain.Customer{}, err
	}

	registrationDate, verr := validateCustomer(req)
	if verr.HasErrors() {
		return domain.Customer{}, verr
	}

	existing, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		if err == repository.ErrNotFound {
			return domain.Customer{}, domain.NewNotFoundError("customer", id)
		}
		return domain.Customer{}, domain.NewStorageError("customer get", err)
	}

	existing.LastName = strings.TrimSpace(req.LastName)
	existing.FirstName = strings.TrimSpace(req.FirstName)
	existing.MiddleName = strings.TrimSpace(req.MiddleName)
	existing.Phone = strings.TrimSpace(req.Phone)
	existing.Email = strings.TrimSpace(req.Email)
	existing.Notes = strings.TrimSpace(req.Notes)
	// Пустая дата в запросе на обновление сохраняет прежнюю дату регистрации
	if req.RegistrationDate != "" {
		existing.RegistrationDate = registrationDate
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		if err == repository.ErrNotFound {
			return domain.Customer{}, domain.NewNotFoundError("customer", id)
		}
		return domain.Customer{}, domain.NewStorageError("customer update", err)
	}

	s.publishEvent(ctx, kafka.TopicCustomerUpdated, existing.ID.String(), existing)

	s.log.Info("Updated customer with ID: %s", existing.ID)
	return existing, nil
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	s.log.Debug("Deleting customer with ID: %s", id)

	customerID, err := parseCustomerID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, customerID); err != nil {
		if err == repository.ErrNotFound {
			return domain.NewNotFoundError("customer", id)
		}
		return domain.NewStorageError("customer delete", err)
	}

	s.metrics.IncCustomerDeleted()
	s.publishEvent(ctx, kafka.TopicCustomerDeleted, id, map[string]string{"id": id})

	s.log.Info("Deleted customer with ID: %s", id)
	return nil
}

func (s *customerService) QuickSearch(ctx context.Context, query string, limit int) ([]domain.CustomerSummary, error) {
	s.log.Debug("Quick search: query=%q limit=%d", query, limit)

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.CustomerSummary{}, nil
	}
	if limit <= 0 {
		limit = DefaultQuickSearchLimit
	}

	summaries, err := s.repo.QuickSearch(ctx, query, limit)
	if err != nil {
		return nil, domain.NewStorageError("customer quick search", err)
	}

	if summaries == nil {
		summaries = []domain.CustomerSummary{}
	}
	return summaries, nil
}

// publishEvent отправляет событие в Kafka; сбой публикации не ломает операцию
func (s *customerService) publishEvent(ctx context.Context, topic, key string, payload interface{}) {
	if err := s.producer.PublishEvent(ctx, topic, key, payload); err != nil {
		s.log.Warnw("Failed to publish customer event", "topic", topic, "key", key, "error", err)
	}
}
