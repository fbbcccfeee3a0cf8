package dialect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Dialect поддерживаемая СУБД
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

// sqliteForeignKeyMessage текст ошибки sqlite при нарушении внешнего ключа
const sqliteForeignKeyMessage = "FOREIGN KEY constraint failed"

// коды ошибок PostgreSQL
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// Parse проверяет имя драйвера из конфигурации
func Parse(driver string) (Dialect, error) {
	switch Dialect(driver) {
	case Postgres, SQLite:
		return Dialect(driver), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// DriverName имя драйвера для sql.Open
func (d Dialect) DriverName() string {
	return string(d)
}

// Builder построитель запросов с нужными плейсхолдерами
func (d Dialect) Builder() psqlbuilder.Builder {
	if d == Postgres {
		return psqlbuilder.New(squirrel.Dollar, true)
	}
	return psqlbuilder.New(squirrel.Question, false)
}

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique || liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// IsForeignKeyViolation нарушение внешнего ключа
// sqlite отдаёт ON DELETE RESTRICT как SQLITE_CONSTRAINT_TRIGGER, поэтому проверяется и текст ошибки
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgForeignKeyViolation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.Code != sqlite3.ErrConstraint {
			return false
		}
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey ||
			strings.Contains(liteErr.Error(), sqliteForeignKeyMessage)
	}
	return false
}

// IsConstraintViolation срабатывание именованного ограничения на пересечение
// В postgres это EXCLUDE constraint, в sqlite триггер с RAISE(ABORT, '<name>')
func IsConstraintViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgExclusionViolation && pqErr.Constraint == name
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrConstraint && strings.Contains(liteErr.Error(), name)
	}
	return false
}

// IsRetryable конфликт сериализации, после которого транзакцию можно повторить
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgSerializationFailure || pqErr.Code == pgDeadlockDetected
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}
	return false
}
