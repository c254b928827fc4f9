package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/nail-salon/internal/models"
)

func TestWriteBookings(t *testing.T) {
	method := "ath"
	total := int64(4550)
	bookings := []models.Booking{
		{
			ID:            "b-1",
			Date:          "2025-06-15",
			Time:          "10:00",
			Service:       "Manicura",
			ClientName:    "Ana",
			ClientPhone:   "7875550000",
			Status:        "confirmed",
			PaymentMethod: &method,
			DepositAmount: 1000,
			TotalPrice:    &total,
			CreatedAt:     time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
		},
		{ID: "b-2", Date: "2025-06-16", Time: "11:00", Status: "pending"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, bookings))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(bookingsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, bookingColumns, rows[0])
	assert.Equal(t, "b-1", rows[1][0])
	assert.Equal(t, "ath", rows[1][8])
	assert.Equal(t, "10", rows[1][10])
	assert.Equal(t, "45.5", rows[1][11])
	assert.Equal(t, "2025-06-01 09:30", rows[1][13])
	assert.Equal(t, "pending", rows[2][7])
}
