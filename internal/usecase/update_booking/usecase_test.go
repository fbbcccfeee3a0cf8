package update_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/internal/service/allocator"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var existingStart = time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC) // 10:00 Istanbul

type fakeRepo struct {
	booking *domain.Booking
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

type fakeAllocator struct {
	got *allocator.Candidate
	err error
}

func (f *fakeAllocator) Allocate(_ context.Context, c allocator.Candidate) (*domain.Booking, error) {
	f.got = &c
	if f.err != nil {
		return nil, f.err
	}
	services := make([]domain.Service, len(c.ServiceIDs))
	for i, id := range c.ServiceIDs {
		services[i] = domain.Service{ID: id, Worktime: types.NewWorktime(0, 30, 0)}
	}
	return &domain.Booking{
		ID:       *c.ExcludeBookingID,
		UserID:   c.UserID,
		Services: services,
		DateTime: c.Start.UTC(),
		EndTime:  c.Start.UTC().Add(domain.TotalDuration(services)),
		Notes:    c.Notes,
	}, nil
}

type fakeResolver struct {
	loc *time.Location
}

func (f fakeResolver) Location(context.Context) (*time.Location, error) {
	return f.loc, nil
}

func setup(t *testing.T) (*UseCase, *fakeAllocator, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	repo := &fakeRepo{booking: &domain.Booking{
		ID:     5,
		UserID: 9,
		Services: []domain.Service{
			{ID: 1, Worktime: types.NewWorktime(0, 30, 0)},
			{ID: 2, Worktime: types.NewWorktime(0, 30, 0)},
		},
		DateTime:  existingStart,
		EndTime:   existingStart.Add(time.Hour),
		Notes:     ptr.Ptr("old"),
		CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}}
	alloc := &fakeAllocator{}
	return NewUseCase(repo, alloc, fakeResolver{loc: loc}, logger.Nop()), alloc, loc
}

func TestUseCase_Reschedule(t *testing.T) {
	uc, alloc, loc := setup(t)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5, DateTime: ptr.Ptr("2025-03-10T14:00")})
	require.NoError(t, err)

	require.NotNil(t, alloc.got)
	assert.Equal(t, int64(5), *alloc.got.ExcludeBookingID)
	assert.Equal(t, int64(9), alloc.got.UserID, "owner is kept")
	assert.Equal(t, []int64{1, 2}, alloc.got.ServiceIDs, "services are kept")
	assert.Equal(t, "old", *alloc.got.Notes)
	assert.True(t, alloc.got.Start.Equal(time.Date(2025, 3, 10, 14, 0, 0, 0, loc)))

	assert.Equal(t, 14, resp.DateTime.Hour())
	assert.Equal(t, 15, resp.EndTime.Hour())
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), resp.CreatedAt.UTC())
}

func TestUseCase_ChangeServicesKeepsStart(t *testing.T) {
	uc, alloc, _ := setup(t)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ServiceIDs: []int64{3}, Notes: ptr.Ptr("new")})
	require.NoError(t, err)

	assert.Equal(t, []int64{3}, alloc.got.ServiceIDs)
	assert.True(t, alloc.got.Start.Equal(existingStart))
	assert.Equal(t, "new", *alloc.got.Notes)
}

func TestUseCase_NotFound(t *testing.T) {
	uc, alloc, _ := setup(t)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 77})
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Nil(t, alloc.got)
}

func TestUseCase_InvalidInput(t *testing.T) {
	uc, _, _ := setup(t)

	for _, req := range []Request{
		{BookingID: 0},
		{BookingID: 5, DateTime: ptr.Ptr(" ")},
		{BookingID: 5, DateTime: ptr.Ptr("tomorrow")},
	} {
		_, err := uc.Execute(context.Background(), &req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ServiceIDs: []int64{0}})
	assert.ErrorIs(t, err, allocator.ErrInvalidServices)
}

func TestUseCase_Rejections(t *testing.T) {
	uc, alloc, _ := setup(t)

	for _, rejection := range []error{allocator.ErrSlotConflict, allocator.ErrNoAvailableSlot, allocator.ErrPastBooking} {
		alloc.err = rejection
		_, err := uc.Execute(context.Background(), &Request{BookingID: 5, DateTime: ptr.Ptr("2025-03-10T16:00")})
		assert.ErrorIs(t, err, rejection)
	}

	alloc.err = allocator.ErrBookingNotFound
	_, err := uc.Execute(context.Background(), &Request{BookingID: 5})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
