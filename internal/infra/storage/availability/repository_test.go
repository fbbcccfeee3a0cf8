package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/dialect"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const day = types.Date("2025-03-10")

func newRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(storagetest.Open(t), dialect.SQLite)
}

func window(start, end string, active bool) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		Date:        day,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		IsAvailable: active,
	}
}

func TestRepository_HasOpenWindowInclusive(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, window("09:00:00", "17:00:00", true))
	require.NoError(t, err)

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"inside", "10:00:00", "11:00:00", true},
		{"starts at window start", "09:00:00", "10:00:00", true},
		{"ends at window end", "16:00:00", "17:00:00", true},
		{"whole window", "09:00:00", "17:00:00", true},
		{"starts before", "08:30:00", "09:30:00", false},
		{"ends after", "16:30:00", "17:30:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := repo.HasOpenWindow(ctx, day, types.TimeString(tt.start), types.TimeString(tt.end))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}

	ok, err := repo.HasOpenWindow(ctx, day.AddDays(1), "10:00:00", "11:00:00")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_InactiveWindowDoesNotAdmit(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, window("09:00:00", "12:00:00", false))
	require.NoError(t, err)

	ok, err := repo.HasOpenWindow(ctx, day, "10:00:00", "11:00:00")
	require.NoError(t, err)
	assert.False(t, ok)

	overlap, err := repo.HasOverlap(ctx, day, "11:00:00", "13:00:00", nil)
	require.NoError(t, err)
	assert.True(t, overlap)
}

func TestRepository_HasOverlapStrict(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, window("09:00:00", "12:00:00", true))
	require.NoError(t, err)

	overlap, err := repo.HasOverlap(ctx, day, "12:00:00", "13:00:00", nil)
	require.NoError(t, err)
	assert.False(t, overlap, "adjacent windows do not overlap")

	overlap, err = repo.HasOverlap(ctx, day, "11:00:00", "13:00:00", nil)
	require.NoError(t, err)
	assert.True(t, overlap)

	overlap, err = repo.HasOverlap(ctx, day, "10:00:00", "11:00:00", &created.ID)
	require.NoError(t, err)
	assert.False(t, overlap)
}

func TestRepository_TriggerRejectsOverlap(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, window("09:00:00", "12:00:00", true))
	require.NoError(t, err)

	_, err = repo.Create(ctx, window("11:00:00", "13:00:00", true))
	assert.ErrorIs(t, err, ErrOverlap)

	second, err := repo.Create(ctx, window("12:00:00", "13:00:00", true))
	require.NoError(t, err)

	second.StartTime = "11:30:00"
	assert.ErrorIs(t, repo.Update(ctx, second), ErrOverlap)
}

func TestRepository_UpdateDeleteList(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, window("09:00:00", "12:00:00", true))
	require.NoError(t, err)
	other := window("10:00:00", "11:00:00", false)
	other.Date = day.AddDays(2)
	_, err = repo.Create(ctx, other)
	require.NoError(t, err)

	first.EndTime = "13:00:00"
	require.NoError(t, repo.Update(ctx, first))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("13:00:00"), got.EndTime)
	assert.Equal(t, day, got.Date)

	all, err := repo.List(ctx, domain.AvailabilityFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := repo.List(ctx, domain.AvailabilityFilter{OnlyActive: true})
	require.NoError(t, err)
	assert.Len(t, active, 1)

	ranged, err := repo.List(ctx, domain.AvailabilityFilter{From: ptr.Ptr(day.AddDays(1)), To: ptr.Ptr(day.AddDays(5))})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, day.AddDays(2), ranged[0].Date)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), ErrWindowNotFound)
	_, err = repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrWindowNotFound)
}
