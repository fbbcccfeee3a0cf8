package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// SheetName лист с бронированиями
const SheetName = "Bookings"

// ContentType MIME тип xlsx
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var headers = []string{
	"ID", "User ID", "Date", "Start", "End", "Duration", "Services", "Total price", "Notes", "Created at",
}

// XLSXExporter строит xlsx отчёт по бронированиям в памяти
type XLSXExporter struct{}

// NewXLSXExporter создает экспортёр
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// FileName имя файла выгрузки за период
func FileName(from, to string) string {
	if from == "" {
		from = "start"
	}
	if to == "" {
		to = "now"
	}
	return fmt.Sprintf("bookings_%s_to_%s.xlsx", from, to)
}

// WriteBookings формирует книгу с одной строкой на бронирование
// Время выводится в зоне loc
func (e *XLSXExporter) WriteBookings(bookings []*domain.Booking, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: create sheet: %v", ErrExport, err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create header style: %v", ErrExport, err)
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, header)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(SheetName, "A1", lastHeader, headerStyle)

	for i, b := range bookings {
		row := i + 2
		start := b.DateTime.In(loc)
		end := b.EndTime.In(loc)

		names := make([]string, len(b.Services))
		for j, s := range b.Services {
			names[j] = s.Name
		}

		values := []interface{}{
			b.ID,
			b.UserID,
			start.Format("2006-01-02"),
			start.Format("15:04"),
			end.Format("15:04"),
			end.Sub(start).String(),
			strings.Join(names, ", "),
			domain.TotalPrice(b.Services).StringFixed(2),
			ptr.Value(b.Notes),
			b.CreatedAt.In(loc).Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, fmt.Errorf("%w: write cell %s: %v", ErrExport, cell, err)
			}
		}
	}

	_ = f.SetColWidth(SheetName, "A", "B", 10)
	_ = f.SetColWidth(SheetName, "C", "F", 12)
	_ = f.SetColWidth(SheetName, "G", "G", 40)
	_ = f.SetColWidth(SheetName, "H", "H", 12)
	_ = f.SetColWidth(SheetName, "I", "I", 40)
	_ = f.SetColWidth(SheetName, "J", "J", 18)

	// Удаляем стандартный лист
	_ = f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: write workbook: %v", ErrExport, err)
	}
	return buf.Bytes(), nil
}
