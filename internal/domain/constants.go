package domain

import "time"

// Default configuration values
const (
	DefaultTimezone        = "Europe/Istanbul"
	DefaultSlotStepMinutes = 30
	TimezoneSettingID      = 1
)

// Business rules
const (
	// CancellationLeadTime минимальное время до начала, когда владелец ещё может отменить бронирование
	CancellationLeadTime = 8 * time.Hour

	MaxNotesLength        = 500
	MaxServiceNameLength  = 100
	MaxCategoryNameLength = 100
	MaxServicesPerBooking = 20
	MaxTimezoneLength     = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
