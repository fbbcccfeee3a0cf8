package schema

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/dialect"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
)

//go:embed postgres.sql
var postgresSchema string

//go:embed sqlite.sql
var sqliteSchema string

// Apply создает таблицы, индексы и ограничения, если их ещё нет
// Скрипты идемпотентны, поэтому вызывается при каждом старте с migrate = true
func Apply(ctx context.Context, db dbmetrics.DBExecutor, d dialect.Dialect) error {
	var script string
	switch d {
	case dialect.Postgres:
		script = postgresSchema
	case dialect.SQLite:
		script = sqliteSchema
	default:
		return fmt.Errorf("schema: unsupported dialect %q", d)
	}

	if _, err := db.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("schema: apply %s: %w", d, err)
	}
	return nil
}
