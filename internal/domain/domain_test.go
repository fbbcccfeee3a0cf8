package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func svc(id int64, minutes int) Service {
	return Service{ID: id, Worktime: types.NewWorktime(0, minutes, 0)}
}

func TestTotalDuration(t *testing.T) {
	assert.Zero(t, TotalDuration(nil))
	assert.Zero(t, TotalDuration([]Service{}))

	a := []Service{svc(1, 30), svc(2, 45)}
	b := []Service{svc(3, 60)}
	ab := append(append([]Service{}, a...), b...)

	assert.Equal(t, 75*time.Minute, TotalDuration(a))
	assert.Equal(t, TotalDuration(a)+TotalDuration(b), TotalDuration(ab))

	booking := Booking{Services: ab}
	assert.Equal(t, 135*time.Minute, booking.TotalDuration())
	assert.Equal(t, []int64{1, 2, 3}, booking.ServiceIDs())
}

func TestBooking_IsCancellable(t *testing.T) {
	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	b := Booking{DateTime: start}

	assert.True(t, b.IsCancellable(start.Add(-8*time.Hour)), "exactly 8h before start")
	assert.True(t, b.IsCancellable(start.Add(-24*time.Hour)))
	assert.False(t, b.IsCancellable(start.Add(-(7*time.Hour + 59*time.Minute + 59*time.Second))), "7h59m59s before start")
	assert.False(t, b.IsCancellable(start.Add(time.Hour)), "already started")
}

func TestBooking_Overlaps(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC) }
	b := Booking{DateTime: at(10, 0), EndTime: at(11, 0)}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"same interval", at(10, 0), at(11, 0), true},
		{"inside", at(10, 15), at(10, 45), true},
		{"covers", at(9, 0), at(12, 0), true},
		{"starts inside", at(10, 30), at(11, 30), true},
		{"ends inside", at(9, 30), at(10, 30), true},
		{"back to back after", at(11, 0), at(12, 0), false},
		{"back to back before", at(9, 0), at(10, 0), false},
		{"disjoint", at(13, 0), at(14, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Overlaps(tt.start, tt.end))
		})
	}
}

func TestAvailabilityWindow_Contains(t *testing.T) {
	day := types.Date("2025-03-10")
	w := AvailabilityWindow{Date: day, StartTime: "09:00:00", EndTime: "10:00:00", IsAvailable: true}

	assert.True(t, w.Contains(day, "09:00:00", "10:00:00"), "window bounds are inclusive")
	assert.True(t, w.Contains(day, "09:15:00", "09:45:00"))
	assert.False(t, w.Contains(day, "08:59:00", "09:30:00"))
	assert.False(t, w.Contains(day, "09:30:00", "10:00:01"))
	assert.False(t, w.Contains(day.AddDays(1), "09:00:00", "10:00:00"))

	w.IsAvailable = false
	assert.False(t, w.Contains(day, "09:00:00", "10:00:00"), "inactive windows never contain")
}

func TestAvailabilityWindow_ShrinkingNeverAdmits(t *testing.T) {
	day := types.Date("2025-03-10")
	wide := AvailabilityWindow{Date: day, StartTime: "09:00:00", EndTime: "17:00:00", IsAvailable: true}
	narrow := AvailabilityWindow{Date: day, StartTime: "10:00:00", EndTime: "12:00:00", IsAvailable: true}

	candidates := [][2]types.TimeString{
		{"08:00:00", "09:00:00"}, {"09:00:00", "10:00:00"}, {"10:00:00", "11:00:00"},
		{"11:30:00", "12:30:00"}, {"16:00:00", "17:00:00"}, {"16:30:00", "17:30:00"},
	}
	for _, c := range candidates {
		if !wide.Contains(day, c[0], c[1]) {
			assert.False(t, narrow.Contains(day, c[0], c[1]), "%s-%s", c[0], c[1])
		}
	}
}

func TestAvailabilityWindow_OverlapsAndValidate(t *testing.T) {
	day := types.Date("2025-03-10")
	existing := AvailabilityWindow{Date: day, StartTime: "09:00:00", EndTime: "12:00:00"}

	assert.True(t, existing.Overlaps(day, "11:00:00", "13:00:00"))
	assert.False(t, existing.Overlaps(day, "12:00:00", "13:00:00"))
	assert.False(t, existing.Overlaps(day.AddDays(1), "11:00:00", "13:00:00"))

	assert.NoError(t, existing.Validate())
	bad := AvailabilityWindow{StartTime: "10:00:00", EndTime: "10:00:00"}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidWindow)
}

func TestPrincipal_CanAccess(t *testing.T) {
	assert.True(t, Principal{UserID: 1}.CanAccess(1))
	assert.False(t, Principal{UserID: 2}.CanAccess(1))
	assert.True(t, Principal{UserID: 2, IsAdmin: true}.CanAccess(1))
}
