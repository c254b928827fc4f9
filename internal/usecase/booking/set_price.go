package booking

import (
	"context"

	"github.com/BruksfildServices01/nail-salon/internal/audit"
	domain "github.com/BruksfildServices01/nail-salon/internal/domain/booking"
	"github.com/BruksfildServices01/nail-salon/internal/models"
)

type SetPrice struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetPrice(repo domain.Repository, audit *audit.Dispatcher) *SetPrice {
	return &SetPrice{repo: repo, audit: audit}
}

func (uc *SetPrice) Execute(
	ctx context.Context,
	bookingID string,
	totalPrice int64,
	notes *string,
	adminID *uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := domain.SetPrice(b, totalPrice, notes); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdatePrice(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AdminID:  adminID,
		Action:   "booking_price_set",
		Entity:   "booking",
		EntityID: b.ID,
		Metadata: map[string]any{"total_price": totalPrice},
	})

	return b, nil
}
