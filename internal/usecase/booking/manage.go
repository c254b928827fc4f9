package booking

import (
	"context"

	"github.com/BruksfildServices01/nail-salon/internal/audit"
	domain "github.com/BruksfildServices01/nail-salon/internal/domain/booking"
	"github.com/BruksfildServices01/nail-salon/internal/domain/schedule"
	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/models"
)

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

func (uc *GetBooking) Execute(ctx context.Context, bookingID string) (*models.Booking, error) {
	return uc.repo.GetBooking(ctx, bookingID)
}

// ListBookings sweeps expired pending bookings before reading so the admin
// normally sees no stale pending row.
type ListBookings struct {
	repo   domain.Repository
	expire *ExpireStalePending
}

func NewListBookings(repo domain.Repository, expire *ExpireStalePending) *ListBookings {
	return &ListBookings{repo: repo, expire: expire}
}

func (uc *ListBookings) Execute(ctx context.Context, filter domain.ListFilter) ([]models.Booking, error) {
	if filter.Status != "" && !domain.Status(filter.Status).Valid() {
		return nil, httperr.Validation("invalid_status")
	}
	for _, d := range []string{filter.Date, filter.From, filter.To} {
		if d != "" && !schedule.IsDate(d) {
			return nil, httperr.Validation("invalid_date")
		}
	}

	// a failed sweep only leaves stale pending rows visible
	if uc.expire != nil {
		if _, err := uc.expire.Execute(ctx); err != nil {
			uc.expire.log.Warn().Err(err).Msg("expiry sweep before list failed")
		}
	}

	return uc.repo.ListBookings(ctx, filter)
}

type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteBooking(repo domain.Repository, audit *audit.Dispatcher) *DeleteBooking {
	return &DeleteBooking{repo: repo, audit: audit}
}

func (uc *DeleteBooking) Execute(ctx context.Context, bookingID string, adminID *uint) error {
	if err := uc.repo.DeleteBooking(ctx, bookingID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		AdminID:  adminID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: bookingID,
	})
	return nil
}
