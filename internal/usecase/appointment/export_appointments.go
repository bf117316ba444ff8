package appointment

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/session"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

const (
	MaxExportDays = 31
	exportSheet   = "Appointments"
)

var (
	ErrRangeTooLarge = httperr.ErrBusiness("range_too_large")
	ErrInvalidRange  = httperr.ErrBusiness("invalid_range")
)

// ExportAppointments writes a salon's appointments between two dates
// (inclusive) into an XLSX workbook. Weekends are skipped since they are
// never bookable.
type ExportAppointments struct {
	gw domain.Gateway
}

func NewExportAppointments(
	gw domain.Gateway,
) *ExportAppointments {
	return &ExportAppointments{
		gw: gw,
	}
}

func (uc *ExportAppointments) Execute(
	ctx context.Context,
	salonID string,
	from string,
	to string,
) ([]byte, error) {

	// --------------------------------------------------
	// 1️⃣ Range
	// --------------------------------------------------
	start, err := timezone.ParseDate(from, "")
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	end, err := timezone.ParseDate(to, "")
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	if end.Sub(start).Hours()/24 >= MaxExportDays {
		return nil, ErrRangeTooLarge
	}

	// --------------------------------------------------
	// 2️⃣ Appointments per day
	// --------------------------------------------------
	var all []models.Appointment
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(domain.DateLayout)
		if !domain.IsWeekday(date, d.Location()) {
			continue
		}

		aps, err := uc.gw.ListAppointments(ctx, salonID, date)
		if err != nil {
			return nil, fmt.Errorf("list appointments for %s: %w", date, err)
		}
		for _, ap := range aps {
			if ap.Date == "" {
				ap.Date = date
			}
			all = append(all, ap)
		}
	}

	user, _ := session.UserFrom(ctx)
	rows := toListDTO(all, user.Role)

	// --------------------------------------------------
	// 3️⃣ Workbook
	// --------------------------------------------------
	return writeWorkbook(from, to, rows)
}

func writeWorkbook(from, to string, rows []dto.AppointmentListDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	f.SetCellValue(exportSheet, "A1", fmt.Sprintf("Period: %s - %s", from, to))

	headers := []string{"Date", "Time", "Customer", "Service", "Status", "Amount"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(exportSheet, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		f.SetCellStyle(exportSheet, "A2", "F2", headerStyle)
	}

	for i, r := range rows {
		row := i + 3
		f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), r.Date)
		f.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), r.Time)
		f.SetCellValue(exportSheet, fmt.Sprintf("C%d", row), r.CustomerName)
		f.SetCellValue(exportSheet, fmt.Sprintf("D%d", row), r.ServiceName)
		f.SetCellValue(exportSheet, fmt.Sprintf("E%d", row), r.Status)
		f.SetCellValue(exportSheet, fmt.Sprintf("F%d", row), r.Amount)
	}

	f.SetColWidth(exportSheet, "A", "B", 12)
	f.SetColWidth(exportSheet, "C", "D", 25)
	f.SetColWidth(exportSheet, "E", "F", 14)

	f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
