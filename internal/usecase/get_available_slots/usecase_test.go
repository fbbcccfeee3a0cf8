package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/dialect"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-ReservationService/internal/service/allocator"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const day = types.Date("2025-03-10")

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixedLocation struct{ loc *time.Location }

func (f fixedLocation) Location(context.Context) (*time.Location, error) { return f.loc, nil }

type fixture struct {
	uc       *UseCase
	catalog  *catalogRepo.Repository
	windows  *availabilityRepo.Repository
	bookings *bookingRepo.Repository
	loc      *time.Location
	hour     domain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := storagetest.Open(t)

	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	f := &fixture{
		catalog:  catalogRepo.NewRepository(db, dialect.SQLite),
		windows:  availabilityRepo.NewRepository(db, dialect.SQLite),
		bookings: bookingRepo.NewRepository(db, dialect.SQLite),
		loc:      loc,
	}
	hour, err := f.catalog.CreateService(context.Background(), &domain.Service{Name: "Massage", Worktime: types.NewWorktime(1, 0, 0)})
	require.NoError(t, err)
	f.hour = *hour

	f.uc = NewUseCase(f.catalog, f.windows, f.bookings, fixedLocation{loc: loc}, 30, logger.Nop())
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 3, 1, 12, 0, 0, 0, loc)}
	return f
}

func (f *fixture) window(t *testing.T, start, end types.TimeString, active bool) {
	t.Helper()
	_, err := f.windows.Create(context.Background(), &domain.AvailabilityWindow{
		Date: day, StartTime: start, EndTime: end, IsAvailable: active,
	})
	require.NoError(t, err)
}

func (f *fixture) book(t *testing.T, hour int) {
	t.Helper()
	start := time.Date(2025, 3, 10, hour, 0, 0, 0, f.loc)
	_, err := f.bookings.Create(context.Background(), &domain.Booking{
		UserID:   1,
		Services: []domain.Service{f.hour},
		DateTime: start,
		EndTime:  start.Add(time.Hour),
	})
	require.NoError(t, err)
}

func starts(resp *Response) []string {
	out := make([]string, len(resp.Slots))
	for i, s := range resp.Slots {
		out[i] = s.Start.Format("15:04")
	}
	return out
}

func TestUseCase_StepsThroughWindow(t *testing.T) {
	f := newFixture(t)
	f.window(t, "09:00:00", "12:00:00", true)

	resp, err := f.uc.Execute(context.Background(), &Request{Date: day, ServiceIDs: []int64{f.hour.ID}})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, starts(resp), "last slot ends exactly at window end")
	assert.Equal(t, time.Hour, resp.Duration)
	assert.Equal(t, "Europe/Istanbul", resp.Timezone)
	for _, s := range resp.Slots {
		assert.Equal(t, f.loc, s.Start.Location())
		assert.Equal(t, time.Hour, s.Duration())
	}
}

func TestUseCase_SkipsConflicts(t *testing.T) {
	f := newFixture(t)
	f.window(t, "09:00:00", "12:00:00", true)
	f.book(t, 10)

	resp, err := f.uc.Execute(context.Background(), &Request{Date: day, ServiceIDs: []int64{f.hour.ID}})
	require.NoError(t, err)

	// 09:00-10:00 и 11:00-12:00 соседствуют с бронированием 10:00-11:00
	assert.Equal(t, []string{"09:00", "11:00"}, starts(resp))
}

func TestUseCase_SkipsPast(t *testing.T) {
	f := newFixture(t)
	f.window(t, "09:00:00", "12:00:00", true)
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 3, 10, 9, 45, 0, 0, f.loc)}

	resp, err := f.uc.Execute(context.Background(), &Request{Date: day, ServiceIDs: []int64{f.hour.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30", "11:00"}, starts(resp))
}

func TestUseCase_InactiveWindowsAndEmptyDays(t *testing.T) {
	f := newFixture(t)
	f.window(t, "09:00:00", "12:00:00", false)

	resp, err := f.uc.Execute(context.Background(), &Request{Date: day, ServiceIDs: []int64{f.hour.ID}})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)

	resp, err = f.uc.Execute(context.Background(), &Request{Date: day.AddDays(1), ServiceIDs: []int64{f.hour.ID}})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_NeverCrossesMidnight(t *testing.T) {
	f := newFixture(t)
	f.window(t, "23:00:00", "23:59:59", true)

	half, err := f.catalog.CreateService(context.Background(), &domain.Service{Name: "Trim", Worktime: types.NewWorktime(0, 30, 0)})
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), &Request{Date: day, ServiceIDs: []int64{half.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{"23:00"}, starts(resp))

	resp, err = f.uc.Execute(context.Background(), &Request{Date: day, ServiceIDs: []int64{f.hour.ID}})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_DaylightSavingMatchesAllocator(t *testing.T) {
	db := storagetest.Open(t)
	ctx := context.Background()

	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	catalog := catalogRepo.NewRepository(db, dialect.SQLite)
	windows := availabilityRepo.NewRepository(db, dialect.SQLite)
	bookings := bookingRepo.NewRepository(db, dialect.SQLite)

	hour, err := catalog.CreateService(ctx, &domain.Service{Name: "Massage", Worktime: types.NewWorktime(1, 0, 0)})
	require.NoError(t, err)

	// 2030-03-31 в 02:00 часы переводятся на 03:00
	dstDay := types.Date("2030-03-31")
	_, err = windows.Create(ctx, &domain.AvailabilityWindow{Date: dstDay, StartTime: "01:00:00", EndTime: "03:00:00", IsAvailable: true})
	require.NoError(t, err)

	uc := NewUseCase(catalog, windows, bookings, fixedLocation{loc: loc}, 30, logger.Nop())
	uc.timeProvider = fixedTime{now: time.Date(2030, 3, 1, 0, 0, 0, 0, loc)}

	resp, err := uc.Execute(ctx, &Request{Date: dstDay, ServiceIDs: []int64{hour.ID}})
	require.NoError(t, err)
	require.Equal(t, []string{"01:00"}, starts(resp))
	assert.Equal(t, "03:00", resp.Slots[0].End.Format("15:04"))
	assert.Equal(t, time.Hour, resp.Slots[0].Duration())

	alloc := allocator.NewAllocator(catalog, windows, bookings, storagetest.TxManager(db), nil, logger.Nop())
	candidate := func(start time.Time) allocator.Candidate {
		return allocator.Candidate{UserID: 1, ServiceIDs: []int64{hour.ID}, Start: start, Location: loc}
	}

	// 01:30 CET + 1h = 03:30 CEST, за пределами окна
	_, err = alloc.Allocate(ctx, candidate(time.Date(2030, 3, 31, 1, 30, 0, 0, loc)))
	assert.ErrorIs(t, err, allocator.ErrNoAvailableSlot)

	_, err = alloc.Allocate(ctx, candidate(resp.Slots[0].Start))
	assert.NoError(t, err, "every listed slot is accepted by the allocator")
}

func TestUseCase_MultipleWindowsAndServices(t *testing.T) {
	f := newFixture(t)
	f.window(t, "09:00:00", "10:30:00", true)
	f.window(t, "14:00:00", "15:30:00", true)

	half, err := f.catalog.CreateService(context.Background(), &domain.Service{Name: "Trim", Worktime: types.NewWorktime(0, 30, 0)})
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), &Request{Date: day, ServiceIDs: []int64{f.hour.ID, half.ID, f.hour.ID}})
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, resp.Duration, "duplicates are counted once")
	assert.Equal(t, []string{"09:00", "14:00"}, starts(resp))
}

func TestUseCase_Errors(t *testing.T) {
	f := newFixture(t)

	zero, err := f.catalog.CreateService(context.Background(), &domain.Service{Name: "Consultation"})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{Date: day, ServiceIDs: []int64{f.hour.ID, 999}})
	assert.ErrorIs(t, err, ErrInvalidServices)

	_, err = f.uc.Execute(context.Background(), &Request{Date: day})
	assert.ErrorIs(t, err, ErrEmptyBooking)

	_, err = f.uc.Execute(context.Background(), &Request{Date: day, ServiceIDs: []int64{zero.ID}})
	assert.ErrorIs(t, err, ErrEmptyBooking)

	_, err = f.uc.Execute(context.Background(), &Request{ServiceIDs: []int64{f.hour.ID}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{Date: day, ServiceIDs: []int64{-1}})
	assert.ErrorIs(t, err, ErrInvalidServices)
}
