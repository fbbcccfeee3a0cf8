package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/dialect"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fixture struct {
	repo     *Repository
	haircut  domain.Service
	shave    domain.Service
	baseTime time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := storagetest.Open(t)
	ctx := context.Background()

	services := catalog.NewRepository(db, dialect.SQLite)
	haircut, err := services.CreateService(ctx, &domain.Service{Name: "Haircut", Worktime: types.NewWorktime(0, 30, 0)})
	require.NoError(t, err)
	shave, err := services.CreateService(ctx, &domain.Service{Name: "Shave", Worktime: types.NewWorktime(0, 30, 0)})
	require.NoError(t, err)

	return &fixture{
		repo:     NewRepository(db, dialect.SQLite),
		haircut:  *haircut,
		shave:    *shave,
		baseTime: time.Date(2030, 3, 10, 10, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) booking(userID int64, start time.Time, services ...domain.Service) *domain.Booking {
	return &domain.Booking{
		UserID:   userID,
		Services: services,
		DateTime: start,
		EndTime:  start.Add(domain.TotalDuration(services)),
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.booking(7, f.baseTime, f.shave, f.haircut)
	b.Notes = ptr.Ptr("window seat")
	created, err := f.repo.Create(ctx, b)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := f.repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
	assert.True(t, got.DateTime.Equal(f.baseTime))
	assert.True(t, got.EndTime.Equal(f.baseTime.Add(time.Hour)))
	assert.Equal(t, []int64{f.shave.ID, f.haircut.ID}, got.ServiceIDs())
	require.NotNil(t, got.Notes)
	assert.Equal(t, "window seat", *got.Notes)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = f.repo.GetByID(ctx, 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_HasConflictHalfOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	existing, err := f.repo.Create(ctx, f.booking(1, f.baseTime, f.haircut, f.shave))
	require.NoError(t, err)

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"back to back after", f.baseTime.Add(time.Hour), f.baseTime.Add(2 * time.Hour), false},
		{"back to back before", f.baseTime.Add(-time.Hour), f.baseTime, false},
		{"partial overlap", f.baseTime.Add(30 * time.Minute), f.baseTime.Add(90 * time.Minute), true},
		{"contained", f.baseTime.Add(15 * time.Minute), f.baseTime.Add(45 * time.Minute), true},
		{"covering", f.baseTime.Add(-time.Hour), f.baseTime.Add(2 * time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflict, err := f.repo.HasConflict(ctx, tt.start, tt.end, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, conflict)
		})
	}

	conflict, err := f.repo.HasConflict(ctx, f.baseTime, f.baseTime.Add(time.Hour), &existing.ID)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestRepository_TriggerRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.repo.Create(ctx, f.booking(1, f.baseTime, f.haircut, f.shave))
	require.NoError(t, err)

	_, err = f.repo.Create(ctx, f.booking(2, f.baseTime.Add(30*time.Minute), f.haircut))
	assert.ErrorIs(t, err, ErrOverlap)

	adjacent, err := f.repo.Create(ctx, f.booking(2, f.baseTime.Add(time.Hour), f.haircut))
	require.NoError(t, err)

	adjacent.DateTime = f.baseTime.Add(45 * time.Minute)
	adjacent.EndTime = adjacent.DateTime.Add(30 * time.Minute)
	assert.ErrorIs(t, f.repo.Update(ctx, adjacent), ErrOverlap)
}

func TestRepository_UpdateReplacesServices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.repo.Create(ctx, f.booking(1, f.baseTime, f.haircut))
	require.NoError(t, err)

	created.Services = []domain.Service{f.shave, f.haircut}
	created.DateTime = f.baseTime.Add(2 * time.Hour)
	created.EndTime = created.DateTime.Add(created.TotalDuration())
	require.NoError(t, f.repo.Update(ctx, created))

	got, err := f.repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{f.shave.ID, f.haircut.ID}, got.ServiceIDs())
	assert.True(t, got.EndTime.Equal(f.baseTime.Add(3*time.Hour)))

	missing := f.booking(1, f.baseTime.Add(5*time.Hour), f.haircut)
	missing.ID = 404
	assert.ErrorIs(t, f.repo.Update(ctx, missing), ErrBookingNotFound)
}

func TestRepository_ListAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.repo.Create(ctx, f.booking(1, f.baseTime, f.haircut))
	require.NoError(t, err)
	_, err = f.repo.Create(ctx, f.booking(2, f.baseTime.Add(time.Hour), f.shave))
	require.NoError(t, err)
	_, err = f.repo.Create(ctx, f.booking(1, f.baseTime.Add(24*time.Hour), f.shave))
	require.NoError(t, err)

	mine, err := f.repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.True(t, mine[0].DateTime.Before(mine[1].DateTime))
	assert.Len(t, mine[0].Services, 1)

	from := f.baseTime
	to := f.baseTime.Add(12 * time.Hour)
	sameDay, err := f.repo.List(ctx, domain.BookingsFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, sameDay, 2)

	intervals, err := f.repo.ListIntervals(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, intervals, 2)
	assert.Empty(t, intervals[0].Services)

	require.NoError(t, f.repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, f.repo.Delete(ctx, first.ID), ErrBookingNotFound)

	mine, err = f.repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestRepository_LockDayNoopOnSQLite(t *testing.T) {
	f := newFixture(t)
	assert.NoError(t, f.repo.LockDay(context.Background(), types.Date("2030-03-10")))
}
