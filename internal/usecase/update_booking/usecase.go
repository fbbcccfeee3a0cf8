package update_booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/internal/service/allocator"
	"github.com/m04kA/SMC-ReservationService/internal/service/clock"
)

// UseCase use case для изменения бронирования администратором
type UseCase struct {
	bookingRepo BookingRepository
	allocator   Allocator
	resolver    LocationResolver
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, allocator Allocator, resolver LocationResolver, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		allocator:   allocator,
		resolver:    resolver,
		logger:      logger,
	}
}

// Execute переносит бронирование и/или меняет услуги и заметки
// Новый интервал проходит те же проверки, что и при создании, само бронирование из проверки конфликта исключается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking id=%d, services=%v", req.BookingID, req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Часовой пояс
	loc, err := uc.resolver.Location(ctx)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to resolve timezone: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve timezone: %v", ErrInternal, err)
	}

	// 3. Текущее состояние бронирования
	existing, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 4. Собираем кандидата из изменённых и прежних полей
	start := existing.DateTime
	if req.DateTime != nil {
		start, err = clock.Resolve(*req.DateTime, loc)
		if err != nil {
			uc.logger.Warn("UpdateBooking: invalid date_time=%q: %v", *req.DateTime, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	serviceIDs := existing.ServiceIDs()
	if req.ServiceIDs != nil {
		serviceIDs = req.ServiceIDs
	}

	notes := existing.Notes
	if req.Notes != nil {
		notes = req.Notes
	}

	// 5. Проверки и запись
	booking, err := uc.allocator.Allocate(ctx, allocator.Candidate{
		UserID:           existing.UserID,
		ServiceIDs:       serviceIDs,
		Start:            start,
		Location:         loc,
		Notes:            notes,
		ExcludeBookingID: &existing.ID,
	})
	if err != nil {
		if errors.Is(err, allocator.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		if errors.Is(err, allocator.ErrInternal) {
			uc.logger.Error("UpdateBooking: allocation failed for booking id=%d: %v", existing.ID, err)
		} else {
			uc.logger.Warn("UpdateBooking: rejected for booking id=%d: %v", existing.ID, err)
		}
		return nil, err
	}
	booking.CreatedAt = existing.CreatedAt

	uc.logger.Info("UpdateBooking: booking id=%d updated", booking.ID)
	return fromDomainBooking(booking, loc), nil
}
