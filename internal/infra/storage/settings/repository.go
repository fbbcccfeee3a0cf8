package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/dialect"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Repository репозиторий настроек часового пояса
type Repository struct {
	db DBExecutor
	sb psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor, d dialect.Dialect) *Repository {
	return &Repository{db: db, sb: d.Builder()}
}

// GetOrCreate возвращает строку настроек, создавая её со значением по умолчанию
// Запись выполняется только при отсутствии строки, ON CONFLICT DO NOTHING делает одновременное первое чтение безопасным
func (r *Repository) GetOrCreate(ctx context.Context, defaultTimezone string) (*domain.TimezoneSetting, error) {
	setting, err := r.Get(ctx)
	if err == nil {
		return setting, nil
	}
	if !errors.Is(err, ErrSettingNotFound) {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Insert("timezone_settings").
		Columns("id", "timezone", "updated_at").
		Values(domain.TimezoneSettingID, defaultTimezone, types.NewInstant(time.Now())).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrCreate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err = executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: GetOrCreate - execute insert: %w", ErrExecQuery, err)
	}

	return r.Get(ctx)
}

// Get получает строку настроек
func (r *Repository) Get(ctx context.Context) (*domain.TimezoneSetting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select("id", "timezone", "updated_at").
		From("timezone_settings").
		Where(squirrel.Eq{"id": domain.TimezoneSettingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		setting   domain.TimezoneSetting
		updatedAt types.Instant
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&setting.ID, &setting.Timezone, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan setting: %w", ErrScanRow, err)
	}
	setting.UpdatedAt = updatedAt.Time

	return &setting, nil
}

// UpdateTimezone сохраняет новый часовой пояс, создавая строку при необходимости
func (r *Repository) UpdateTimezone(ctx context.Context, timezone string) (*domain.TimezoneSetting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Insert("timezone_settings").
		Columns("id", "timezone", "updated_at").
		Values(domain.TimezoneSettingID, timezone, types.NewInstant(time.Now())).
		Suffix("ON CONFLICT (id) DO UPDATE SET timezone = excluded.timezone, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateTimezone - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err = executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: UpdateTimezone - execute upsert: %w", ErrExecQuery, err)
	}

	return r.Get(ctx)
}
