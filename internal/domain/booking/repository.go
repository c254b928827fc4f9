package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/nail-salon/internal/models"
)

type ListFilter struct {
	Status string
	Date   string
	From   string
	To     string
	Query  string
}

type Repository interface {
	// -------- Booking (create / read) --------
	CreateBooking(ctx context.Context, b *models.Booking) error

	GetBooking(ctx context.Context, id string) (*models.Booking, error)

	ListBookings(ctx context.Context, filter ListFilter) ([]models.Booking, error)

	// -------- Booking (state change) --------
	// ResolvePending writes a confirm or cancel transition only if the stored
	// row is still pending; otherwise it returns a booking_not_pending conflict.
	ResolvePending(ctx context.Context, b *models.Booking) error

	UpdatePrice(ctx context.Context, b *models.Booking) error

	DeleteBooking(ctx context.Context, id string) error

	// ExpirePending cancels every pending booking whose deadline is before
	// now and returns the affected ids.
	ExpirePending(ctx context.Context, now time.Time) ([]string, error)

	// -------- Availability --------
	// ListActiveTimes returns the times taken by non-cancelled bookings on date.
	ListActiveTimes(ctx context.Context, date string) ([]string, error)

	// ListActiveTimesForPeriod groups taken times by date for [from, to].
	ListActiveTimesForPeriod(ctx context.Context, from, to string) (map[string][]string, error)
}
