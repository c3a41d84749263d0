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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id, customer_id, order_date, product_name, quantity, price, status, notes, created_at`

// Коды ошибок PostgreSQL
const (
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// PostgresOrderRepository реализация репозитория заказов через PostgreSQL
type PostgresOrderRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewPostgresOrderRepository создает новый репозиторий заказов через PostgreSQL
func NewPostgresOrderRepository(db *pgxpool.Pool, log *logger.Logger) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db:  db,
		log: log,
	}
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var order domain.Order
	var orderDate time.Time
	var status string

	err := row.Scan(
		&order.ID,
		&order.CustomerID,
		&orderDate,
		&order.ProductName,
		&order.Quantity,
		&order.Price,
		&status,
		&order.Notes,
		&order.CreatedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}

	order.OrderDate = domain.NewDate(orderDate)
	order.Status = domain.OrderStatus(status)
	return order, nil
}

// Create создает новый заказ
func (r *PostgresOrderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	query := `
		INSERT INTO orders (id, customer_id, order_date, product_name, quantity, price, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := r.db.QueryRow(
		ctx,
		query,
		order.ID,
		order.CustomerID,
		order.OrderDate.Time,
		order.ProductName,
		order.Quantity,
		order.Price,
		string(order.Status),
		order.Notes,
		order.CreatedAt,
	).Scan(&order.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// Нарушение внешнего ключа: клиента не существует
			if pgErr.Code == pgForeignKeyViolation {
				return domain.Order{}, repository.ErrNotFound
			}
			if pgErr.Code == pgCheckViolation {
				return domain.Order{}, repository.ErrInvalidData
			}
		}
		return domain.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

// GetByID возвращает заказ по ID
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, repository.ErrNotFound
		}
		return domain.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// UpdateStatus атомарно обновляет статус заказа
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	result, err := r.db.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete удаляет заказ
func (r *PostgresOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if result.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListByCustomer возвращает заказы клиента по дате заказа по убыванию
func (r *PostgresOrderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = $1 ORDER BY order_date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}
