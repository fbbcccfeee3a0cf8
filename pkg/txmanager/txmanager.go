package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
)

var (
	// ErrBeginTx ошибка открытия транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx ошибка фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// Beginner источник транзакций (*dbmetrics.DB)
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// RetryObserver получает уведомление о каждом повторе транзакции
type RetryObserver interface {
	IncTxRetry(isolation string)
}

// Option настройка менеджера
type Option func(*Manager)

// WithRetry включает повтор сериализуемых транзакций
// retryable решает, какие ошибки считаются конфликтом сериализации
func WithRetry(maxRetries int, retryable func(error) bool) Option {
	return func(m *Manager) {
		m.maxRetries = maxRetries
		m.retryable = retryable
	}
}

// WithoutIsolationLevels отключает передачу уровня изоляции драйверу
// Нужно для драйверов, которые сериализуют запись сами (sqlite с _txlock=immediate)
func WithoutIsolationLevels() Option {
	return func(m *Manager) {
		m.isolationLevels = false
	}
}

// WithRetryObserver подключает счетчик повторов
func WithRetryObserver(o RetryObserver) Option {
	return func(m *Manager) {
		m.observer = o
	}
}

// Manager менеджер транзакций
// Транзакция передаётся репозиториям через контекст (dbmetrics.WithTx)
type Manager struct {
	db              Beginner
	maxRetries      int
	retryable       func(error) bool
	isolationLevels bool
	observer        RetryObserver
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db Beginner, opts ...Option) *Manager {
	m := &Manager{
		db:              db,
		isolationLevels: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, "default", fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
// При конфликте сериализации транзакция повторяется до maxRetries раз
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; ; attempt++ {
		err = m.run(ctx, opts, "serializable", fn)
		if err == nil || m.retryable == nil || !m.retryable(err) || attempt >= m.maxRetries {
			return err
		}
		if m.observer != nil {
			m.observer.IncTxRetry("serializable")
		}
		if ctx.Err() != nil {
			return err
		}
	}
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, "read_only", fn)
}

func (m *Manager) run(ctx context.Context, opts *sql.TxOptions, name string, fn func(ctx context.Context) error) error {
	// Вложенный вызов: переиспользуем внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	if !m.isolationLevels {
		opts = nil
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBeginTx, name, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %s: %w", ErrCommitTx, name, err)
	}

	return nil
}
