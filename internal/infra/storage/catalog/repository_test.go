package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/dialect"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(storagetest.Open(t), dialect.SQLite)
}

func TestRepository_ServiceCRUD(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	category, err := repo.CreateCategory(ctx, &domain.Category{Name: "Hair"})
	require.NoError(t, err)

	created, err := repo.CreateService(ctx, &domain.Service{
		Name:       "Haircut",
		Worktime:   types.NewWorktime(0, 30, 0),
		Price:      decimal.RequireFromString("150"),
		Info:       ptr.Ptr("short"),
		CategoryID: &category.ID,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := repo.GetServiceByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Haircut", got.Name)
	assert.Equal(t, types.NewWorktime(0, 30, 0), got.Worktime)
	assert.True(t, decimal.RequireFromString("150.00").Equal(got.Price))
	require.NotNil(t, got.Info)
	assert.Equal(t, "short", *got.Info)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, category.ID, *got.CategoryID)

	got.Name = "Long haircut"
	got.Worktime = types.NewWorktime(1, 0, 0)
	require.NoError(t, repo.UpdateService(ctx, got))

	updated, err := repo.GetServiceByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Long haircut", updated.Name)
	assert.Equal(t, types.NewWorktime(1, 0, 0), updated.Worktime)

	byCategory, err := repo.ListServices(ctx, &category.ID)
	require.NoError(t, err)
	assert.Len(t, byCategory, 1)

	require.NoError(t, repo.DeleteService(ctx, created.ID))
	_, err = repo.GetServiceByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.ErrorIs(t, repo.DeleteService(ctx, created.ID), ErrServiceNotFound)
}

func TestRepository_CreateServiceUnknownCategory(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.CreateService(context.Background(), &domain.Service{
		Name:       "Massage",
		Worktime:   types.NewWorktime(1, 0, 0),
		CategoryID: ptr.Ptr(int64(404)),
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestRepository_GetServicesByIDsSkipsUnknown(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	a, err := repo.CreateService(ctx, &domain.Service{Name: "A", Worktime: types.NewWorktime(0, 30, 0)})
	require.NoError(t, err)
	b, err := repo.CreateService(ctx, &domain.Service{Name: "B", Worktime: types.NewWorktime(0, 15, 0)})
	require.NoError(t, err)

	services, err := repo.GetServicesByIDs(ctx, []int64{a.ID, b.ID, 999})
	require.NoError(t, err)
	assert.Len(t, services, 2)

	empty, err := repo.GetServicesByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepository_ReferencedServiceCannotBeDeleted(t *testing.T) {
	db := storagetest.Open(t)
	repo := NewRepository(db, dialect.SQLite)
	ctx := context.Background()

	service, err := repo.CreateService(ctx, &domain.Service{Name: "A", Worktime: types.NewWorktime(0, 30, 0)})
	require.NoError(t, err)

	referenced, err := repo.IsServiceReferenced(ctx, service.ID)
	require.NoError(t, err)
	assert.False(t, referenced)

	_, err = db.ExecContext(ctx,
		`INSERT INTO bookings (user_id, date_time, end_time, created_at) VALUES (1, '2030-01-01T10:00:00Z', '2030-01-01T10:30:00Z', '2030-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO booking_services (booking_id, service_id, position) VALUES (1, ?, 0)`, service.ID)
	require.NoError(t, err)

	referenced, err = repo.IsServiceReferenced(ctx, service.ID)
	require.NoError(t, err)
	assert.True(t, referenced)

	assert.ErrorIs(t, repo.DeleteService(ctx, service.ID), ErrServiceInUse)
}

func TestRepository_Categories(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	hair, err := repo.CreateCategory(ctx, &domain.Category{Name: "Hair"})
	require.NoError(t, err)
	_, err = repo.CreateCategory(ctx, &domain.Category{Name: "Hair"})
	assert.ErrorIs(t, err, ErrCategoryExists)

	nails, err := repo.CreateCategory(ctx, &domain.Category{Name: "Nails"})
	require.NoError(t, err)

	nails.Name = "Hair"
	assert.ErrorIs(t, repo.UpdateCategory(ctx, nails), ErrCategoryExists)

	service, err := repo.CreateService(ctx, &domain.Service{Name: "Cut", Worktime: types.NewWorktime(0, 30, 0), CategoryID: &hair.ID})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteCategory(ctx, hair.ID))
	_, err = repo.GetCategoryByID(ctx, hair.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	orphan, err := repo.GetServiceByID(ctx, service.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.CategoryID)

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Nails", categories[0].Name)
}
