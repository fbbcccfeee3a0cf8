package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/dialect"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var windowColumns = []string{
	"id",
	"day",
	"start_time",
	"end_time",
	"is_available",
}

// Repository репозиторий окон доступности
type Repository struct {
	db DBExecutor
	sb psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor, d dialect.Dialect) *Repository {
	return &Repository{db: db, sb: d.Builder()}
}

// HasOpenWindow проверяет, что активное окно дня целиком покрывает [start, end]
// Границы включительны: бронь может начинаться ровно в start_time окна и заканчиваться ровно в end_time
func (r *Repository) HasOpenWindow(ctx context.Context, day types.Date, start, end types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select("id").
		From("availability_windows").
		Where(squirrel.Eq{"day": day, "is_available": true}).
		Where(squirrel.LtOrEq{"start_time": start}).
		Where(squirrel.GtOrEq{"end_time": end}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasOpenWindow - build select query: %v", ErrBuildQuery, err)
	}

	return r.exists(ctx, executor, "HasOpenWindow", query, args)
}

// HasOverlap проверяет строгое пересечение [start, end) с любым окном дня, включая неактивные
// excludeID исключает изменяемое окно из проверки
func (r *Repository) HasOverlap(ctx context.Context, day types.Date, start, end types.TimeString, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	q := r.sb.Select("id").
		From("availability_windows").
		Where(squirrel.Eq{"day": day}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})
	if excludeID != nil {
		q = q.Where(squirrel.NotEq{"id": *excludeID})
	}
	q = q.Limit(1)
	if dbmetrics.IsInTransaction(ctx) {
		q = r.sb.ForUpdate(q)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasOverlap - build select query: %v", ErrBuildQuery, err)
	}

	return r.exists(ctx, executor, "HasOverlap", query, args)
}

// Create создает окно доступности
func (r *Repository) Create(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Insert("availability_windows").
		Columns("day", "start_time", "end_time", "is_available").
		Values(window.Date, window.StartTime, window.EndTime, window.IsAvailable).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err = executor.QueryRowContext(ctx, query, args...).Scan(&window.ID); err != nil {
		if dialect.IsConstraintViolation(err, ConstraintNoOverlap) {
			return nil, ErrOverlap
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return window, nil
}

// Update изменяет окно доступности
func (r *Repository) Update(ctx context.Context, window *domain.AvailabilityWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update("availability_windows").
		Set("day", window.Date).
		Set("start_time", window.StartTime).
		Set("end_time", window.EndTime).
		Set("is_available", window.IsAvailable).
		Where(squirrel.Eq{"id": window.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if dialect.IsConstraintViolation(err, ConstraintNoOverlap) {
			return ErrOverlap
		}
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

// Delete удаляет окно доступности
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Delete("availability_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

// GetByID получает окно по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(windowColumns...).
		From("availability_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	window, err := scanWindow(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWindowNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan window: %w", ErrScanRow, err)
	}

	return window, nil
}

// List получает окна по фильтру, отсортированные по дню и началу
func (r *Repository) List(ctx context.Context, filter domain.AvailabilityFilter) ([]domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	q := r.sb.Select(windowColumns...).
		From("availability_windows").
		OrderBy("day ASC", "start_time ASC")
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"day": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.LtOrEq{"day": *filter.To})
	}
	if filter.OnlyActive {
		q = q.Where(squirrel.Eq{"is_available": true})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.AvailabilityWindow, 0)
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		windows = append(windows, *w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %w", ErrExecQuery, err)
	}

	return windows, nil
}

func (r *Repository) exists(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) (bool, error) {
	var id int64
	err := executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWindow(row rowScanner) (*domain.AvailabilityWindow, error) {
	var w domain.AvailabilityWindow
	if err := row.Scan(&w.ID, &w.Date, &w.StartTime, &w.EndTime, &w.IsAvailable); err != nil {
		return nil, err
	}
	return &w, nil
}
