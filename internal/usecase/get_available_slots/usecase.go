package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	serviceRepo      ServiceRepository
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	resolver         LocationResolver
	step             time.Duration
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// stepMinutes шаг, с которым перебираются начала слотов
func NewUseCase(
	serviceRepo ServiceRepository,
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	resolver LocationResolver,
	stepMinutes int,
	logger Logger,
) *UseCase {
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}
	return &UseCase{
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		resolver:         resolver,
		step:             time.Duration(stepMinutes) * time.Minute,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Слоты вычисляются теми же предикатами, что и при создании бронирования, но без блокировок:
// ответ может устареть к моменту бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, services=%v", req.Date, req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Длительность по услугам
	duration, err := uc.totalDuration(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	// 3. Часовой пояс
	loc, err := uc.resolver.Location(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve timezone: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve timezone: %v", ErrInternal, err)
	}

	response := &Response{
		Date:     req.Date,
		Timezone: loc.String(),
		Duration: duration,
		Slots:    []domain.AvailableSlot{},
	}

	// 4. Активные окна дня
	windows, err := uc.availabilityRepo.List(ctx, domain.AvailabilityFilter{
		From:       &req.Date,
		To:         &req.Date,
		OnlyActive: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list windows for %s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: failed to list windows: %v", ErrInternal, err)
	}
	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: no open windows on %s", req.Date)
		return response, nil
	}

	// 5. Занятые интервалы дня
	dayStart := req.Date.Time(loc)
	dayEnd := req.Date.AddDays(1).Time(loc)
	bookings, err := uc.bookingRepo.ListIntervals(ctx, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list bookings for %s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// 6. Перебор слотов
	response.Slots = generateSlots(windows, req.Date, loc, duration, uc.step, uc.timeProvider.Now(), bookings)

	uc.logger.Info("GetAvailableSlots: %d slots of %s on %s", len(response.Slots), duration, req.Date)
	return response, nil
}

func (uc *UseCase) totalDuration(ctx context.Context, ids []int64) (time.Duration, error) {
	unique := uniqueIDs(ids)
	if len(unique) == 0 {
		uc.logger.Warn("GetAvailableSlots: no services requested")
		return 0, ErrEmptyBooking
	}

	services, err := uc.serviceRepo.GetServicesByIDs(ctx, unique)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load services %v: %v", unique, err)
		return 0, fmt.Errorf("%w: failed to load services: %v", ErrInternal, err)
	}
	if len(services) != len(unique) {
		uc.logger.Warn("GetAvailableSlots: some of services %v not found", unique)
		return 0, fmt.Errorf("%w: %v", ErrInvalidServices, unique)
	}

	duration := domain.TotalDuration(services)
	if duration <= 0 {
		uc.logger.Warn("GetAvailableSlots: services %v have zero duration", unique)
		return 0, ErrEmptyBooking
	}
	return duration, nil
}
