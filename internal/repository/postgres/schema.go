package postgres

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed sql/schema.sql
var schemaFS embed.FS

// EnsureSchema применяет DDL схемы. Все выражения идемпотентны,
// поэтому вызов безопасен при каждом старте сервиса.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ddl, err := schemaFS.ReadFile("sql/schema.sql")
	if err != nil {
		return fmt.Errorf("read embedded schema: %w", err)
	}

	if _, err := pool.Exec(ctx, string(ddl)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	return nil
}
