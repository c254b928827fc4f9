package booking

import (
	"context"

	"github.com/BruksfildServices01/nail-salon/internal/audit"
	domain "github.com/BruksfildServices01/nail-salon/internal/domain/booking"
	"github.com/BruksfildServices01/nail-salon/internal/metrics"
	"github.com/BruksfildServices01/nail-salon/internal/models"
	"github.com/BruksfildServices01/nail-salon/internal/timezone"
)

type CancelBooking struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	clock   timezone.Clock
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
	clock timezone.Clock,
) *CancelBooking {
	return &CancelBooking{
		repo:    repo,
		audit:   audit,
		metrics: metrics,
		clock:   clock,
	}
}

// Execute frees the slot of a pending booking. Cancelling twice succeeds.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID string,
	reason string,
	adminID *uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	changed, err := domain.Cancel(b, reason, uc.clock())
	if err != nil {
		return nil, err
	}
	if !changed {
		return b, nil
	}

	if err := uc.repo.ResolvePending(ctx, b); err != nil {
		return nil, err
	}

	uc.metrics.BookingCancelled(reason, 1)
	uc.audit.Dispatch(audit.Event{
		AdminID:  adminID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: b.ID,
		Metadata: map[string]any{"reason": reason},
	})

	return b, nil
}
