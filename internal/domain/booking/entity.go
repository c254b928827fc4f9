package booking

import (
	"time"

	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Confirm moves a pending booking to confirmed and closes its payment window.
func Confirm(b *models.Booking, method PaymentMethod, reference string, now time.Time) error {
	if !method.Valid() {
		return httperr.Validation("invalid_payment_method")
	}
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	m := string(method)
	b.Status = string(StatusConfirmed)
	b.PaymentDeadline = nil
	b.PaymentMethod = &m
	b.PaymentReference = reference
	b.ConfirmedAt = &now
	return nil
}

// Cancel reports changed=false when the booking was already cancelled.
func Cancel(b *models.Booking, reason string, now time.Time) (changed bool, err error) {
	noop, err := CanCancel(Status(b.Status))
	if err != nil || noop {
		return false, err
	}

	b.Status = string(StatusCancelled)
	b.CancelReason = reason
	b.CancelledAt = &now
	return true, nil
}

// IsPaymentExpired reports whether a pending booking is past its deadline.
func IsPaymentExpired(b *models.Booking, now time.Time) bool {
	return Status(b.Status) == StatusPending &&
		b.PaymentDeadline != nil &&
		now.After(*b.PaymentDeadline)
}

func SetPrice(b *models.Booking, totalPrice int64, notes *string) error {
	if totalPrice < 0 {
		return httperr.Validation("invalid_price")
	}
	b.TotalPrice = &totalPrice
	if notes != nil {
		b.Notes = notes
	}
	return nil
}
