package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dhoini/CRM-service/internal/domain"
	"github.com/Dhoini/CRM-service/internal/repository"
	"github.com/Dhoini/CRM-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const customerColumns = `id, last_name, first_name, middle_name, phone, email, registration_date, notes, created_at`

// PostgresCustomerRepository реализация репозитория клиентов через PostgreSQL
type PostgresCustomerRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewPostgresCustomerRepository создает новый репозиторий клиентов через PostgreSQL
func NewPostgresCustomerRepository(db *pgxpool.Pool, log *logger.Logger) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{
		db:  db,
		log: log,
	}
}

func scanCustomer(row pgx.Row) (domain.Customer, error) {
	var customer domain.Customer
	var registrationDate time.Time

	err := row.Scan(
		&customer.ID,
		&customer.LastName,
		&customer.FirstName,
		&customer.MiddleName,
		&customer.Phone,
		&customer.Email,
		&registrationDate,
		&customer.Notes,
		&customer.CreatedAt,
	)
	if err != nil {
		return domain.Customer{}, err
	}

	customer.RegistrationDate = domain.NewDate(registrationDate)
	return customer, nil
}

// Create создает нового клиента
func (r *PostgresCustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	query := `
		INSERT INTO customers (id, last_name, first_name, middle_name, phone, email, registration_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := r.db.QueryRow(
		ctx,
		query,
		customer.ID,
		customer.LastName,
		customer.FirstName,
		customer.MiddleName,
		customer.Phone,
		customer.Email,
		customer.RegistrationDate.Time,
		customer.Notes,
		customer.CreatedAt,
	).Scan(&customer.CreatedAt)

	if err != nil {
		return domain.Customer{}, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

// GetByID возвращает клиента по ID
func (r *PostgresCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, repository.ErrNotFound
		}
		return domain.Customer{}, fmt.Errorf("failed to get customer: %w", err)
	}

	return customer, nil
}

// Update обновляет существующего клиента
func (r *PostgresCustomerRepository) Update(ctx context.Context, customer domain.Customer) error {
	query := `
		UPDATE customers
		SET last_name = $1, first_name = $2, middle_name = $3, phone = $4, email = $5,
		    registration_date = $6, notes = $7
		WHERE id = $8
	`

	result, err := r.db.Exec(
		ctx,
		query,
		customer.LastName,
		customer.FirstName,
		customer.MiddleName,
		customer.Phone,
		customer.Email,
		customer.RegistrationDate.Time,
		customer.Notes,
		customer.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	if result.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete удаляет клиента и все его заказы в одной транзакции
func (r *PostgresCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// FK объявлен с ON DELETE CASCADE; явное удаление заказов держит
	// инвариант и без каскада на стороне схемы.
	if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE customer_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete customer orders: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	if result.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit customer delete: %w", err)
	}

	return nil
}

// Search возвращает страницу клиентов по фильтру и общее число совпадений
func (r *PostgresCustomerRepository) Search(ctx context.Context, filter repository.CustomerFilter) ([]domain.Customer, int, error) {
	where := ``
	args := []interface{}{}

	switch {
	case filter.Date != nil:
		where = `WHERE registration_date = $1`
		args = append(args, filter.Date.Time)
	case filter.Query != "":
		where = `WHERE last_name ILIKE '%' || $1 || '%'
			OR first_name ILIKE '%' || $1 || '%'
			OR phone ILIKE '%' || $1 || '%'
			OR email ILIKE '%' || $1 || '%'`
		args = append(args, filter.Query)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM customers ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	query := `SELECT ` + customerColumns + ` FROM customers ` + where +
		` ORDER BY last_name ASC, first_name ASC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(` OFFSET $%d LIMIT $%d`, len(args)+1, len(args)+2)
		args = append(args, filter.Offset, filter.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, total, nil
}

// QuickSearch возвращает проекции клиентов для автодополнения
func (r *PostgresCustomerRepository) QuickSearch(ctx context.Context, query string, limit int) ([]domain.CustomerSummary, error) {
	filter := repository.CustomerFilter{Query: query, Limit: limit}
	customers, _, err := r.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.CustomerSummary, 0, len(customers))
	for _, customer := range customers {
		summaries = append(summaries, customer.Summary())
	}
	return summaries, nil
}

// ListByRegistration возвращает клиентов с датой регистрации в диапазоне [from, to]
func (r *PostgresCustomerRepository) ListByRegistration(ctx context.Context, from, to *domain.Date) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	args := []interface{}{}

	if from != nil {
		args = append(args, from.Time)
		query += fmt.Sprintf(` WHERE registration_date >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, to.Time)
		if from != nil {
			query += fmt.Sprintf(` AND registration_date <= $%d`, len(args))
		} else {
			query += fmt.Sprintf(` WHERE registration_date <= $%d`, len(args))
		}
	}

	query += ` ORDER BY last_name ASC, first_name ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers by registration date: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}
