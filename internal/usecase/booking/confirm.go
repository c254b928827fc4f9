package booking

import (
	"context"

	"github.com/BruksfildServices01/nail-salon/internal/audit"
	domain "github.com/BruksfildServices01/nail-salon/internal/domain/booking"
	"github.com/BruksfildServices01/nail-salon/internal/metrics"
	"github.com/BruksfildServices01/nail-salon/internal/timezone"
)

type ConfirmInput struct {
	BookingID string
	Method    domain.PaymentMethod
	Reference string
	AdminID   *uint
}

// ConfirmPayment settles a pending booking. A payment that arrives before the
// sweep is honored even if the deadline already passed.
type ConfirmPayment struct {
	repo     domain.Repository
	notifier Notifier
	audit    *audit.Dispatcher
	metrics  *metrics.Metrics
	clock    timezone.Clock
}

func NewConfirmPayment(
	repo domain.Repository,
	notifier Notifier,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
	clock timezone.Clock,
) *ConfirmPayment {
	return &ConfirmPayment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		metrics:  metrics,
		clock:    clock,
	}
}

func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	in ConfirmInput,
) (*ConfirmResult, error) {

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}

	if err := domain.Confirm(b, in.Method, in.Reference, uc.clock()); err != nil {
		return nil, err
	}

	if err := uc.repo.ResolvePending(ctx, b); err != nil {
		return nil, err
	}

	uc.metrics.BookingConfirmed(string(in.Method))
	uc.audit.Dispatch(audit.Event{
		AdminID:  in.AdminID,
		Action:   "booking_confirmed",
		Entity:   "booking",
		EntityID: b.ID,
		Metadata: map[string]any{"method": in.Method, "reference": in.Reference},
	})

	links := uc.notifier.BookingConfirmed(ctx, noticeFor(b))
	return &ConfirmResult{Booking: b, Links: links}, nil
}

// ConfirmManually is the admin override: confirm without a payment.
func (uc *ConfirmPayment) ConfirmManually(
	ctx context.Context,
	bookingID string,
	adminID *uint,
) (*ConfirmResult, error) {
	return uc.Execute(ctx, ConfirmInput{
		BookingID: bookingID,
		Method:    domain.PaymentAdminOverride,
		AdminID:   adminID,
	})
}
