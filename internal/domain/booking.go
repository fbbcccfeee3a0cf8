package domain

import (
	"time"
)

// Booking represents a reservation of one shared calendar interval
type Booking struct {
	ID       int64
	UserID   int64
	Services []Service
	DateTime time.Time // начало, момент времени с часовым поясом
	EndTime  time.Time // DateTime + суммарная длительность услуг
	Notes    *string

	CreatedAt time.Time
}

// TotalDuration returns the sum of worktimes of all services of the booking
func (b *Booking) TotalDuration() time.Duration {
	return TotalDuration(b.Services)
}

// IsCancellable reports whether the booking can still be cancelled by its owner at now
func (b *Booking) IsCancellable(now time.Time) bool {
	return b.DateTime.Sub(now) >= CancellationLeadTime
}

// IsOwnedBy returns true if the booking belongs to the user
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}

// Overlaps reports half-open overlap of [DateTime, EndTime) with [start, end)
// Соседние интервалы (конец одного равен началу другого) не пересекаются
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.DateTime.Before(end) && b.EndTime.After(start)
}

// ServiceIDs returns ids of booked services in order
func (b *Booking) ServiceIDs() []int64 {
	ids := make([]int64, len(b.Services))
	for i, s := range b.Services {
		ids[i] = s.ID
	}
	return ids
}

// TotalDuration sums worktimes of the services
func TotalDuration(services []Service) time.Duration {
	var total time.Duration
	for _, s := range services {
		total += s.Worktime.Duration()
	}
	return total
}

// BookingsFilter фильтр для списка бронирований
type BookingsFilter struct {
	UserID *int64     // только бронирования пользователя (опционально)
	From   *time.Time // date_time >= From (опционально)
	To     *time.Time // date_time < To (опционально)
}
