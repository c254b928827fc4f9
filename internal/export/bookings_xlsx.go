package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/nail-salon/internal/models"
)

const bookingsSheet = "Citas"

var bookingColumns = []string{
	"Código", "Fecha", "Hora", "Servicio", "Cliente", "Teléfono", "Email",
	"Estado", "Método de pago", "Referencia", "Depósito", "Total", "Notas", "Creada",
}

// WriteBookings renders bookings as a one-sheet workbook. Amounts are written
// in dollars.
func WriteBookings(w io.Writer, bookings []models.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", bookingsSheet); err != nil {
		return err
	}

	for i, col := range bookingColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(bookingsSheet, cell, col); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(bookingColumns), 1)
		_ = f.SetCellStyle(bookingsSheet, "A1", last, style)
	}

	for r, b := range bookings {
		row := []any{
			b.ID,
			b.Date,
			b.Time,
			b.Service,
			b.ClientName,
			b.ClientPhone,
			b.ClientEmail,
			b.Status,
			deref(b.PaymentMethod),
			b.PaymentReference,
			dollars(&b.DepositAmount),
			dollars(b.TotalPrice),
			deref(b.Notes),
			b.CreatedAt.Format("2006-01-02 15:04"),
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(bookingsSheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", r+2, err)
		}
	}

	return f.Write(w)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dollars(cents *int64) any {
	if cents == nil {
		return ""
	}
	return float64(*cents) / 100
}
