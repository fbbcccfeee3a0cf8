package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/service/allocator"
	"github.com/m04kA/SMC-ReservationService/internal/service/clock"
)

// UseCase use case для создания бронирования
type UseCase struct {
	allocator Allocator
	resolver  LocationResolver
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(allocator Allocator, resolver LocationResolver, logger Logger) *UseCase {
	return &UseCase{
		allocator: allocator,
		resolver:  resolver,
		logger:    logger,
	}
}

// Execute выполняет use case создания бронирования
// Отказы аллокатора (allocator.Err*) возвращаются без изменений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, services=%v, date_time=%s", req.UserID, req.ServiceIDs, req.DateTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Часовой пояс читается один раз на запрос
	loc, err := uc.resolver.Location(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve timezone: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve timezone: %v", ErrInternal, err)
	}

	// 3. Разбираем время начала в этой зоне
	start, err := clock.Resolve(req.DateTime, loc)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid date_time=%q: %v", req.DateTime, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Проверки и запись
	booking, err := uc.allocator.Allocate(ctx, allocator.Candidate{
		UserID:     req.UserID,
		ServiceIDs: req.ServiceIDs,
		Start:      start,
		Location:   loc,
		Notes:      req.Notes,
	})
	if err != nil {
		if errors.Is(err, allocator.ErrInternal) {
			uc.logger.Error("CreateBooking: allocation failed for user=%d: %v", req.UserID, err)
		} else {
			uc.logger.Warn("CreateBooking: rejected for user=%d: %v", req.UserID, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking id=%d created for user=%d", booking.ID, booking.UserID)
	return fromDomainBooking(booking, loc), nil
}
