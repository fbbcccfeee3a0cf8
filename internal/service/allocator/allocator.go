package allocator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/internal/service/clock"
)

// Исходы для метрики bookings_outcomes_total
const (
	OutcomeCreated         = "created"
	OutcomeUpdated         = "updated"
	OutcomeInvalidServices = "invalid_services"
	OutcomeEmptyBooking    = "empty_booking"
	OutcomePastBooking     = "past_booking"
	OutcomeNoAvailableSlot = "no_available_slot"
	OutcomeSlotConflict    = "slot_conflict"
	OutcomeError           = "error"
)

// Candidate запрашиваемое бронирование
type Candidate struct {
	UserID     int64
	ServiceIDs []int64
	Start      time.Time
	Location   *time.Location // зона настроек, в ней проверяются окна доступности
	Notes      *string

	// ExcludeBookingID переносимое бронирование: не конфликтует само с собой и обновляется вместо вставки
	ExcludeBookingID *int64
}

// Allocator проверяет кандидата и атомарно записывает бронирование
type Allocator struct {
	serviceRepo      ServiceRepository
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	txManager        TransactionManager
	metrics          MetricsCollector
	timeProvider     TimeProvider
	logger           Logger
}

// NewAllocator создает аллокатор слотов
func NewAllocator(
	serviceRepo ServiceRepository,
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics MetricsCollector,
	logger Logger,
) *Allocator {
	return &Allocator{
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Allocate выполняет проверки в фиксированном порядке и сохраняет бронирование
// Порядок: услуги, длительность, прошлое, окно доступности, конфликт, запись.
// Проверка окна, проверка конфликта и запись выполняются в одной сериализуемой транзакции
func (a *Allocator) Allocate(ctx context.Context, c Candidate) (*domain.Booking, error) {
	booking, err := a.allocate(ctx, c)
	a.observe(c, err)
	return booking, err
}

func (a *Allocator) allocate(ctx context.Context, c Candidate) (*domain.Booking, error) {
	// 1. Услуги
	services, err := a.resolveServices(ctx, c.ServiceIDs)
	if err != nil {
		return nil, err
	}

	// 2. Длительность
	duration := domain.TotalDuration(services)
	if duration <= 0 {
		a.logger.Warn("Allocate: user=%d requested zero duration booking", c.UserID)
		return nil, ErrEmptyBooking
	}

	// 3. Прошлое
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	// Хранение идёт с точностью до секунды, дробная часть отбрасывается до всех проверок
	start := c.Start.In(loc).Truncate(time.Second)
	if start.Before(a.timeProvider.Now()) {
		a.logger.Warn("Allocate: user=%d requested past start=%s", c.UserID, start.Format(time.RFC3339))
		return nil, ErrPastBooking
	}

	// 4. Конец интервала
	end := start.Add(duration)

	booking := &domain.Booking{
		UserID:   c.UserID,
		Services: services,
		DateTime: start,
		EndTime:  end,
		Notes:    c.Notes,
	}
	if c.ExcludeBookingID != nil {
		booking.ID = *c.ExcludeBookingID
	}

	err = a.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		day, startTime := clock.WallClock(start, loc)

		if err := a.bookingRepo.LockDay(txCtx, day); err != nil {
			return fmt.Errorf("%w: Allocate - lock day: %w", ErrInternal, err)
		}

		// 5. Окно доступности: интервал целиком в пределах одной даты и одного активного окна
		if !clock.SameLocalDate(start, end, loc) {
			return ErrNoAvailableSlot
		}
		_, endTime := clock.WallClock(end, loc)

		open, err := a.availabilityRepo.HasOpenWindow(txCtx, day, startTime, endTime)
		if err != nil {
			return fmt.Errorf("%w: Allocate - check availability: %w", ErrInternal, err)
		}
		if !open {
			return ErrNoAvailableSlot
		}

		// 6. Конфликт с другими бронированиями
		conflict, err := a.bookingRepo.HasConflict(txCtx, start, end, c.ExcludeBookingID)
		if err != nil {
			return fmt.Errorf("%w: Allocate - check conflict: %w", ErrInternal, err)
		}
		if conflict {
			return ErrSlotConflict
		}

		// 7. Запись
		if c.ExcludeBookingID != nil {
			err = a.bookingRepo.Update(txCtx, booking)
		} else {
			_, err = a.bookingRepo.Create(txCtx, booking)
		}
		switch {
		case err == nil:
			return nil
		case errors.Is(err, bookingRepo.ErrOverlap):
			return ErrSlotConflict
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return ErrBookingNotFound
		default:
			return fmt.Errorf("%w: Allocate - persist booking: %w", ErrInternal, err)
		}
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrNoAvailableSlot):
			a.logger.Warn("Allocate: no open window for %s-%s", start.Format(time.RFC3339), end.Format(time.RFC3339))
		case errors.Is(err, ErrSlotConflict):
			a.logger.Warn("Allocate: slot %s-%s conflicts with an existing booking", start.Format(time.RFC3339), end.Format(time.RFC3339))
		case errors.Is(err, ErrBookingNotFound):
			a.logger.Warn("Allocate: booking id=%d disappeared", booking.ID)
		default:
			a.logger.Error("Allocate: transaction failed: %v", err)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: Allocate - transaction: %w", ErrInternal, err)
			}
		}
		return nil, err
	}

	a.logger.Info("Allocate: booking id=%d user=%d %s-%s", booking.ID, booking.UserID,
		start.Format(time.RFC3339), end.Format(time.RFC3339))
	return booking, nil
}

// resolveServices убирает повторы (порядок первого вхождения сохраняется) и загружает услуги
func (a *Allocator) resolveServices(ctx context.Context, ids []int64) ([]domain.Service, error) {
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return []domain.Service{}, nil
	}

	found, err := a.serviceRepo.GetServicesByIDs(ctx, unique)
	if err != nil {
		a.logger.Error("Allocate: failed to load services %v: %v", unique, err)
		return nil, fmt.Errorf("%w: Allocate - load services: %v", ErrInternal, err)
	}

	byID := make(map[int64]domain.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	services := make([]domain.Service, 0, len(unique))
	missing := make([]int64, 0)
	for _, id := range unique {
		s, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		services = append(services, s)
	}
	if len(missing) > 0 {
		a.logger.Warn("Allocate: unknown services %v", missing)
		return nil, fmt.Errorf("%w: unknown ids %v", ErrInvalidServices, missing)
	}

	return services, nil
}

func (a *Allocator) observe(c Candidate, err error) {
	if a.metrics == nil {
		return
	}

	outcome := OutcomeError
	switch {
	case err == nil && c.ExcludeBookingID != nil:
		outcome = OutcomeUpdated
	case err == nil:
		outcome = OutcomeCreated
	case errors.Is(err, ErrInvalidServices):
		outcome = OutcomeInvalidServices
	case errors.Is(err, ErrEmptyBooking):
		outcome = OutcomeEmptyBooking
	case errors.Is(err, ErrPastBooking):
		outcome = OutcomePastBooking
	case errors.Is(err, ErrNoAvailableSlot):
		outcome = OutcomeNoAvailableSlot
	case errors.Is(err, ErrSlotConflict):
		outcome = OutcomeSlotConflict
	}
	a.metrics.IncBookingOutcome(outcome)
}
