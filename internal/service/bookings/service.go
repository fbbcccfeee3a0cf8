package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/export"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	resolver     LocationResolver
	exporter     Exporter
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	resolver LocationResolver,
	exporter Exporter,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		resolver:     resolver,
		exporter:     exporter,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование, администратор любое
func (s *Service) GetByID(ctx context.Context, principal domain.Principal, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, principal.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !principal.CanAccess(booking.UserID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", principal.UserID, id)
		return nil, ErrNotOwnerOrAdmin
	}

	loc, err := s.location(ctx, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking, loc), nil
}

// Mine получает бронирования текущего пользователя
func (s *Service) Mine(ctx context.Context, principal domain.Principal) (*models.BookingListResponse, error) {
	s.logger.Info("Mine: fetching bookings for user=%d", principal.UserID)

	bookings, err := s.bookingRepo.ListByUser(ctx, principal.UserID)
	if err != nil {
		s.logger.Error("Mine: repository error for user=%d: %v", principal.UserID, err)
		return nil, fmt.Errorf("%w: Mine - repository error: %v", ErrInternal, err)
	}

	loc, err := s.location(ctx, "Mine")
	if err != nil {
		return nil, err
	}

	s.logger.Info("Mine: found %d bookings for user=%d", len(bookings), principal.UserID)
	return models.FromDomainBookingList(bookings, loc), nil
}

// BusyIntervals возвращает занятые интервалы календаря без сведений о владельцах
func (s *Service) BusyIntervals(ctx context.Context, req *models.BusyIntervalsRequest) (*models.IntervalListResponse, error) {
	loc, err := s.location(ctx, "BusyIntervals")
	if err != nil {
		return nil, err
	}

	filter, err := dateRangeFilter(req.From, req.To, loc)
	if err != nil {
		s.logger.Warn("BusyIntervals: %v", err)
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("BusyIntervals: repository error: %v", err)
		return nil, fmt.Errorf("%w: BusyIntervals - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainIntervals(bookings, loc), nil
}

// List получает бронирования с фильтрацией (только администратор)
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	loc, bookings, err := s.list(ctx, "List", req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("List: found %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings, loc), nil
}

// Export выгружает бронирования в xlsx (только администратор)
func (s *Service) Export(ctx context.Context, req *models.ListBookingsRequest) (*models.ExportFile, error) {
	loc, bookings, err := s.list(ctx, "Export", req)
	if err != nil {
		return nil, err
	}

	data, err := s.exporter.WriteBookings(bookings, loc)
	if err != nil {
		s.logger.Error("Export: failed to build workbook: %v", err)
		return nil, fmt.Errorf("%w: Export - build workbook: %v", ErrInternal, err)
	}

	var from, to string
	if req.From != nil {
		from = req.From.String()
	}
	if req.To != nil {
		to = req.To.String()
	}

	s.logger.Info("Export: exported %d bookings (%d bytes)", len(bookings), len(data))
	return &models.ExportFile{FileName: export.FileName(from, to), Data: data}, nil
}

// Delete отменяет бронирование
// Владелец может отменить бронирование не позднее чем за 8 часов до начала, администратор в любой момент
func (s *Service) Delete(ctx context.Context, principal domain.Principal, id int64) error {
	s.logger.Info("Delete: cancelling booking id=%d by user=%d (admin=%t)", id, principal.UserID, principal.IsAdmin)

	booking, err := s.getBooking(ctx, "Delete", id)
	if err != nil {
		return err
	}

	if !principal.CanAccess(booking.UserID) {
		s.logger.Warn("Delete: access denied for user=%d to booking id=%d", principal.UserID, id)
		return ErrNotOwnerOrAdmin
	}

	if !principal.IsAdmin && !booking.IsCancellable(s.timeProvider.Now()) {
		s.logger.Warn("Delete: booking id=%d starts at %s, too late to cancel", id, booking.DateTime.Format(time.RFC3339))
		return ErrCancellationWindowExpired
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found during deletion", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully cancelled booking id=%d", id)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) list(ctx context.Context, op string, req *models.ListBookingsRequest) (*time.Location, []*domain.Booking, error) {
	loc, err := s.location(ctx, op)
	if err != nil {
		return nil, nil, err
	}

	filter, err := dateRangeFilter(req.From, req.To, loc)
	if err != nil {
		s.logger.Warn("%s: %v", op, err)
		return nil, nil, err
	}
	if req.UserID != nil {
		if *req.UserID <= 0 {
			return nil, nil, fmt.Errorf("%w: user_id must be positive", ErrInvalidInput)
		}
		filter.UserID = req.UserID
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return loc, bookings, nil
}

func (s *Service) location(ctx context.Context, op string) (*time.Location, error) {
	loc, err := s.resolver.Location(ctx)
	if err != nil {
		s.logger.Error("%s: failed to resolve timezone: %v", op, err)
		return nil, fmt.Errorf("%w: %s - resolve timezone: %v", ErrInternal, op, err)
	}
	return loc, nil
}

// dateRangeFilter переводит включительный диапазон дат в полуоткрытый диапазон моментов времени в зоне loc
func dateRangeFilter(from, to *types.Date, loc *time.Location) (domain.BookingsFilter, error) {
	var filter domain.BookingsFilter
	if from != nil && to != nil && to.Before(*from) {
		return filter, fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}
	if from != nil {
		start := from.Time(loc)
		filter.From = &start
	}
	if to != nil {
		end := to.AddDays(1).Time(loc)
		filter.To = &end
	}
	return filter, nil
}
