package domain

import "time"

// TimezoneSetting is the single process-wide timezone configuration row
// Строка всегда одна: её идентификатор закреплён (TimezoneSettingID)
type TimezoneSetting struct {
	ID        int64
	Timezone  string
	UpdatedAt time.Time
}

// Location loads the IANA location of the setting
func (s *TimezoneSetting) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}
