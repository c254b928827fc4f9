package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/nail-salon/internal/audit"
	domain "github.com/BruksfildServices01/nail-salon/internal/domain/booking"
	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/metrics"
	"github.com/BruksfildServices01/nail-salon/internal/models"
	"github.com/BruksfildServices01/nail-salon/internal/timezone"
)

// CreateBooking takes a client request and holds the slot as pending until
// the deposit is paid or the window closes.
type CreateBooking struct {
	repo         domain.Repository
	availability AvailabilityChecker
	deposits     DepositSource
	audit        *audit.Dispatcher
	metrics      *metrics.Metrics
	clock        timezone.Clock
	window       time.Duration
}

func NewCreateBooking(
	repo domain.Repository,
	availability AvailabilityChecker,
	deposits DepositSource,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
	clock timezone.Clock,
	window time.Duration,
) *CreateBooking {
	return &CreateBooking{
		repo:         repo,
		availability: availability,
		deposits:     deposits,
		audit:        audit,
		metrics:      metrics,
		clock:        clock,
		window:       window,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Booking, error) {

	now := uc.clock()
	b, err := prepare(ctx, uc.availability, in, now)
	if err != nil {
		return nil, err
	}

	deadline := now.Add(uc.window)
	b.Status = string(domain.InitialStatus())
	b.PaymentDeadline = &deadline
	b.DepositAmount = uc.deposits.DepositCents(ctx)

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.metrics.BookingCreated(b.Status)
	uc.audit.Dispatch(audit.Event{
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: b.ID,
		Metadata: map[string]any{"date": b.Date, "time": b.Time},
	})

	return b, nil
}

// ======================================================
// Manual entry (admin)
// ======================================================

// CreateManualBooking records an appointment arranged outside the web flow.
// It is stored confirmed with the admin override method.
type CreateManualBooking struct {
	repo         domain.Repository
	availability AvailabilityChecker
	notifier     Notifier
	audit        *audit.Dispatcher
	metrics      *metrics.Metrics
	clock        timezone.Clock
}

func NewCreateManualBooking(
	repo domain.Repository,
	availability AvailabilityChecker,
	notifier Notifier,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
	clock timezone.Clock,
) *CreateManualBooking {
	return &CreateManualBooking{
		repo:         repo,
		availability: availability,
		notifier:     notifier,
		audit:        audit,
		metrics:      metrics,
		clock:        clock,
	}
}

func (uc *CreateManualBooking) Execute(
	ctx context.Context,
	in CreateInput,
	adminID *uint,
) (*ConfirmResult, error) {

	now := uc.clock()
	b, err := prepare(ctx, uc.availability, in, now)
	if err != nil {
		return nil, err
	}

	method := string(domain.PaymentAdminOverride)
	b.Status = string(domain.StatusConfirmed)
	b.PaymentMethod = &method
	b.ConfirmedAt = &now

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.metrics.BookingCreated(b.Status)
	uc.metrics.BookingConfirmed(method)
	uc.audit.Dispatch(audit.Event{
		AdminID:  adminID,
		Action:   "booking_created_manual",
		Entity:   "booking",
		EntityID: b.ID,
		Metadata: map[string]any{"date": b.Date, "time": b.Time},
	})

	links := uc.notifier.BookingConfirmed(ctx, noticeFor(b))
	return &ConfirmResult{Booking: b, Links: links}, nil
}

// ======================================================
// Helpers
// ======================================================

func prepare(
	ctx context.Context,
	availability AvailabilityChecker,
	in CreateInput,
	now time.Time,
) (*models.Booking, error) {

	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	startsAt, err := timezone.ParseDateTime(in.Date, in.Time, now.Location())
	if err != nil {
		return nil, httperr.Validation("invalid_date")
	}
	if !startsAt.After(now) {
		return nil, httperr.Validation("slot_in_past")
	}

	ok, err := availability.IsAvailable(ctx, in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.SlotUnavailable("slot_unavailable")
	}

	return &models.Booking{
		ID:          uuid.NewString(),
		Date:        in.Date,
		Time:        in.Time,
		StartsAt:    startsAt,
		Service:     in.Service,
		ClientName:  in.ClientName,
		ClientEmail: in.ClientEmail,
		ClientPhone: in.ClientPhone,
	}, nil
}
