package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/dialect"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"date_time",
	"end_time",
	"notes",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db      DBExecutor
	dialect dialect.Dialect
	sb      psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, d dialect.Dialect) *Repository {
	return &Repository{db: db, dialect: d, sb: d.Builder()}
}

// Create создает бронирование вместе со списком услуг
// Должен вызываться внутри транзакции: строка bookings и строки booking_services пишутся вместе
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	createdAt := types.NewInstant(time.Now())
	query, args, err := r.sb.Insert("bookings").
		Columns("user_id", "date_time", "end_time", "notes", "created_at").
		Values(
			booking.UserID,
			types.NewInstant(booking.DateTime),
			types.NewInstant(booking.EndTime),
			booking.Notes,
			createdAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID); err != nil {
		if dialect.IsConstraintViolation(err, ConstraintNoOverlap) {
			return nil, ErrOverlap
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	booking.CreatedAt = createdAt.Time

	if err = r.insertServices(ctx, executor, booking.ID, booking.Services); err != nil {
		return nil, err
	}

	return booking, nil
}

// Update переносит бронирование на новое время и заменяет список услуг
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update("bookings").
		Set("user_id", booking.UserID).
		Set("date_time", types.NewInstant(booking.DateTime)).
		Set("end_time", types.NewInstant(booking.EndTime)).
		Set("notes", booking.Notes).
		Where(squirrel.Eq{"id": booking.ID}).
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
		return ErrBookingNotFound
	}

	query, args, err = r.sb.Delete("booking_services").
		Where(squirrel.Eq{"booking_id": booking.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build delete services query: %v", ErrBuildQuery, err)
	}
	if _, err = executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Update - delete services: %w", ErrExecQuery, err)
	}

	return r.insertServices(ctx, executor, booking.ID, booking.Services)
}

// Delete удаляет бронирование, строки booking_services удаляются каскадно
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Delete("bookings").
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
		return ErrBookingNotFound
	}

	return nil
}

// GetByID получает бронирование по ID вместе с услугами
// Внутри транзакции строка блокируется (postgres)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	q := r.sb.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		q = r.sb.ForUpdate(q)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	if err = r.attachServices(ctx, executor, []*domain.Booking{booking}); err != nil {
		return nil, err
	}

	return booking, nil
}

// ListByUser получает бронирования пользователя, отсортированные по началу
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	return r.List(ctx, domain.BookingsFilter{UserID: &userID})
}

// List получает бронирования по фильтру, отсортированные по началу
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	q := r.sb.Select(bookingColumns...).
		From("bookings").
		OrderBy("date_time ASC", "id ASC")

	if filter.UserID != nil {
		q = q.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"date_time": types.NewInstant(*filter.From)})
	}
	if filter.To != nil {
		q = q.Where(squirrel.Lt{"date_time": types.NewInstant(*filter.To)})
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

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan booking: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %w", ErrExecQuery, err)
	}

	if err = r.attachServices(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// ListIntervals получает занятые интервалы [date_time, end_time) начинающиеся в [from, to)
// Услуги и владельцы не загружаются
func (r *Repository) ListIntervals(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select("id", "date_time", "end_time").
		From("bookings").
		Where(squirrel.Lt{"date_time": types.NewInstant(to)}).
		Where(squirrel.Gt{"end_time": types.NewInstant(from)}).
		OrderBy("date_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListIntervals - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]*domain.Booking, 0)
	for rows.Next() {
		var (
			b          domain.Booking
			start, end types.Instant
		)
		if err := rows.Scan(&b.ID, &start, &end); err != nil {
			return nil, fmt.Errorf("%w: ListIntervals - scan row: %w", ErrScanRow, err)
		}
		b.DateTime = start.Time
		b.EndTime = end.Time
		intervals = append(intervals, &b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListIntervals - rows iteration: %w", ErrExecQuery, err)
	}

	return intervals, nil
}

// HasConflict проверяет, пересекается ли полуинтервал [start, end) с существующими бронированиями
// excludeID исключает переносимое бронирование из проверки
func (r *Repository) HasConflict(ctx context.Context, start, end time.Time, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	q := r.sb.Select("id").
		From("bookings").
		Where(squirrel.Lt{"date_time": types.NewInstant(end)}).
		Where(squirrel.Gt{"end_time": types.NewInstant(start)})
	if excludeID != nil {
		q = q.Where(squirrel.NotEq{"id": *excludeID})
	}
	q = q.Limit(1)
	if dbmetrics.IsInTransaction(ctx) {
		q = r.sb.ForUpdate(q)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasConflict - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasConflict - execute query: %w", ErrExecQuery, err)
	}

	return true, nil
}

// LockDay берет транзакционную advisory блокировку на календарный день (postgres)
// FOR UPDATE не блокирует ещё не вставленные строки, поэтому конкурентные брони одного дня
// сериализуются этой блокировкой. В sqlite запись и так сериализована BEGIN IMMEDIATE
func (r *Repository) LockDay(ctx context.Context, day types.Date) error {
	if r.dialect != dialect.Postgres || !dbmetrics.IsInTransaction(ctx) {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", "bookings:"+day.String()); err != nil {
		return fmt.Errorf("%w: LockDay - acquire advisory lock: %w", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) insertServices(ctx context.Context, executor DBExecutor, bookingID int64, services []domain.Service) error {
	if len(services) == 0 {
		return nil
	}

	q := r.sb.Insert("booking_services").Columns("booking_id", "service_id", "position")
	for i, s := range services {
		q = q.Values(bookingID, s.ID, i)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertServices - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err = executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertServices - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// attachServices загружает услуги для всех бронирований одним запросом
func (r *Repository) attachServices(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Booking, len(bookings))
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		b.Services = make([]domain.Service, 0)
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}

	query, args, err := r.sb.Select(
		"bs.booking_id",
		"s.id",
		"s.name",
		"s.worktime_seconds",
		"s.price",
		"s.info",
		"s.category_id",
	).
		From("booking_services bs").
		Join("services s ON s.id = bs.service_id").
		Where(squirrel.Eq{"bs.booking_id": ids}).
		OrderBy("bs.booking_id ASC", "bs.position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bookingID  int64
			s          domain.Service
			price      decimal.Decimal
			info       sql.NullString
			categoryID sql.NullInt64
		)
		if err := rows.Scan(&bookingID, &s.ID, &s.Name, &s.Worktime, &price, &info, &categoryID); err != nil {
			return fmt.Errorf("%w: attachServices - scan row: %w", ErrScanRow, err)
		}
		s.Price = price
		if info.Valid {
			s.Info = &info.String
		}
		if categoryID.Valid {
			s.CategoryID = &categoryID.Int64
		}
		if b, ok := byID[bookingID]; ok {
			b.Services = append(b.Services, s)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: attachServices - rows iteration: %w", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                     domain.Booking
		start, end, createdAt types.Instant
		notes                 sql.NullString
	)
	if err := row.Scan(&b.ID, &b.UserID, &start, &end, &notes, &createdAt); err != nil {
		return nil, err
	}
	b.DateTime = start.Time
	b.EndTime = end.Time
	b.CreatedAt = createdAt.Time
	if notes.Valid {
		b.Notes = &notes.String
	}
	return &b, nil
}
