package domain

import "time"

// AvailableSlot represents a start time that can currently be booked
type AvailableSlot struct {
	Start time.Time
	End   time.Time
}

// Duration returns the slot length
func (s *AvailableSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
