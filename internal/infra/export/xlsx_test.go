package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func TestXLSXExporter_WriteBookings(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	start := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	bookings := []*domain.Booking{
		{
			ID:     1,
			UserID: 7,
			Services: []domain.Service{
				{ID: 1, Name: "Haircut", Worktime: types.NewWorktime(0, 30, 0), Price: decimal.RequireFromString("20")},
				{ID: 2, Name: "Shave", Worktime: types.NewWorktime(0, 30, 0), Price: decimal.RequireFromString("10.5")},
			},
			DateTime:  start,
			EndTime:   start.Add(time.Hour),
			Notes:     ptr.Ptr("window seat"),
			CreatedAt: start.Add(-24 * time.Hour),
		},
		{ID: 2, UserID: 8, DateTime: start.Add(2 * time.Hour), EndTime: start.Add(3 * time.Hour)},
	}

	data, err := NewXLSXExporter().WriteBookings(bookings, loc)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, []string{"1", "7", "2025-03-10", "10:00", "11:00", "1h0m0s", "Haircut, Shave", "30.50", "window seat", "2025-03-09 10:00"}, rows[1])
	assert.Equal(t, "12:00", rows[2][3])
}

func TestXLSXExporter_Empty(t *testing.T) {
	data, err := NewXLSXExporter().WriteBookings(nil, time.UTC)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "bookings_2025-03-01_to_2025-03-31.xlsx", FileName("2025-03-01", "2025-03-31"))
	assert.Equal(t, "bookings_start_to_now.xlsx", FileName("", ""))
}
