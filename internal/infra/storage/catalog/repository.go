package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/dialect"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"name",
	"worktime_seconds",
	"price",
	"info",
	"category_id",
}

// Repository репозиторий услуг и категорий
type Repository struct {
	db DBExecutor
	sb psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor, d dialect.Dialect) *Repository {
	return &Repository{db: db, sb: d.Builder()}
}

// CreateService создает услугу
func (r *Repository) CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Insert("services").
		Columns("name", "worktime_seconds", "price", "info", "category_id").
		Values(service.Name, service.Worktime, service.Price.StringFixed(2), service.Info, service.CategoryID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	if err = executor.QueryRowContext(ctx, query, args...).Scan(&service.ID); err != nil {
		if dialect.IsForeignKeyViolation(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("%w: CreateService - execute insert: %w", ErrExecQuery, err)
	}

	return service, nil
}

// UpdateService обновляет услугу
func (r *Repository) UpdateService(ctx context.Context, service *domain.Service) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update("services").
		Set("name", service.Name).
		Set("worktime_seconds", service.Worktime).
		Set("price", service.Price.StringFixed(2)).
		Set("info", service.Info).
		Set("category_id", service.CategoryID).
		Where(squirrel.Eq{"id": service.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateService - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if dialect.IsForeignKeyViolation(err) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("%w: UpdateService - execute update: %w", ErrExecQuery, err)
	}

	return checkAffected(result, ErrServiceNotFound)
}

// DeleteService удаляет услугу
// Услуга, на которую ссылаются бронирования, защищена внешним ключом (RESTRICT)
func (r *Repository) DeleteService(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Delete("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteService - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if dialect.IsForeignKeyViolation(err) {
			return ErrServiceInUse
		}
		return fmt.Errorf("%w: DeleteService - execute delete: %w", ErrExecQuery, err)
	}

	return checkAffected(result, ErrServiceNotFound)
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %w", ErrScanRow, err)
	}

	return service, nil
}

// ListServices получает услуги, опционально только из одной категории
func (r *Repository) ListServices(ctx context.Context, categoryID *int64) ([]domain.Service, error) {
	q := r.sb.Select(serviceColumns...).
		From("services").
		OrderBy("id ASC")
	if categoryID != nil {
		q = q.Where(squirrel.Eq{"category_id": *categoryID})
	}

	return r.queryServices(ctx, "ListServices", q)
}

// GetServicesByIDs получает услуги по списку ID
// Неизвестные ID просто отсутствуют в результате, порядок не гарантируется
func (r *Repository) GetServicesByIDs(ctx context.Context, ids []int64) ([]domain.Service, error) {
	if len(ids) == 0 {
		return []domain.Service{}, nil
	}

	q := r.sb.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": ids})

	return r.queryServices(ctx, "GetServicesByIDs", q)
}

// IsServiceReferenced проверяет, есть ли бронирования с этой услугой
func (r *Repository) IsServiceReferenced(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select("1").
		From("booking_services").
		Where(squirrel.Eq{"service_id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsServiceReferenced - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsServiceReferenced - execute query: %w", ErrExecQuery, err)
	}

	return true, nil
}

// CreateCategory создает категорию
func (r *Repository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Insert("categories").
		Columns("name").
		Values(category.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateCategory - build insert query: %v", ErrBuildQuery, err)
	}

	if err = executor.QueryRowContext(ctx, query, args...).Scan(&category.ID); err != nil {
		if dialect.IsUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("%w: CreateCategory - execute insert: %w", ErrExecQuery, err)
	}

	return category, nil
}

// UpdateCategory переименовывает категорию
func (r *Repository) UpdateCategory(ctx context.Context, category *domain.Category) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update("categories").
		Set("name", category.Name).
		Where(squirrel.Eq{"id": category.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateCategory - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if dialect.IsUniqueViolation(err) {
			return ErrCategoryExists
		}
		return fmt.Errorf("%w: UpdateCategory - execute update: %w", ErrExecQuery, err)
	}

	return checkAffected(result, ErrCategoryNotFound)
}

// DeleteCategory удаляет категорию, у услуг ссылка обнуляется (ON DELETE SET NULL)
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Delete("categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteCategory - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteCategory - execute delete: %w", ErrExecQuery, err)
	}

	return checkAffected(result, ErrCategoryNotFound)
}

// GetCategoryByID получает категорию по ID
func (r *Repository) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select("id", "name").
		From("categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCategoryByID - build select query: %v", ErrBuildQuery, err)
	}

	var category domain.Category
	err = executor.QueryRowContext(ctx, query, args...).Scan(&category.ID, &category.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCategoryByID - scan category: %w", ErrScanRow, err)
	}

	return &category, nil
}

// ListCategories получает все категории по имени
func (r *Repository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select("id", "name").
		From("categories").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%w: ListCategories - scan row: %w", ErrScanRow, err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCategories - rows iteration: %w", ErrExecQuery, err)
	}

	return categories, nil
}

func (r *Repository) queryServices(ctx context.Context, op string, q squirrel.SelectBuilder) ([]domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		services = append(services, *s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %w", ErrExecQuery, op, err)
	}

	return services, nil
}

func checkAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var (
		s          domain.Service
		price      decimal.Decimal
		info       sql.NullString
		categoryID sql.NullInt64
	)
	if err := row.Scan(&s.ID, &s.Name, &s.Worktime, &price, &info, &categoryID); err != nil {
		return nil, err
	}
	s.Price = price
	if info.Valid {
		s.Info = &info.String
	}
	if categoryID.Valid {
		s.CategoryID = &categoryID.Int64
	}
	return &s, nil
}
