// Package storagetest открывает временную sqlite базу со схемой сервиса для тестов
package storagetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/dialect"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/schema"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

// DSN строка подключения к файлу sqlite
// BEGIN IMMEDIATE сериализует пишущие транзакции, busy_timeout заставляет ждать вместо ошибки
func DSN(path string) string {
	return "file:" + path + "?_txlock=immediate&_busy_timeout=10000&_foreign_keys=on&_journal_mode=WAL"
}

// Open создает базу во временной директории теста
// Используется файл, а не :memory:, чтобы все соединения пула видели одни данные
func Open(t *testing.T) *dbmetrics.DB {
	t.Helper()

	raw, err := sql.Open(dialect.SQLite.DriverName(), DSN(filepath.Join(t.TempDir(), "reservation.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	require.NoError(t, schema.Apply(context.Background(), raw, dialect.SQLite))

	return dbmetrics.Wrap(raw, nil, "test")
}

// TxManager менеджер транзакций, настроенный как в main для sqlite
func TxManager(db *dbmetrics.DB) *txmanager.Manager {
	return txmanager.NewTransactionManager(db,
		txmanager.WithoutIsolationLevels(),
		txmanager.WithRetry(3, dialect.IsRetryable),
	)
}
