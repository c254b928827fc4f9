package booking

import "github.com/BruksfildServices01/nail-salon/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// ===============================
// Payment Method
// ===============================

type PaymentMethod string

const (
	PaymentATH           PaymentMethod = "ath"
	PaymentMercadoPago   PaymentMethod = "mercadopago"
	PaymentAdminOverride PaymentMethod = "admin_override"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentATH, PaymentMercadoPago, PaymentAdminOverride:
		return true
	}
	return false
}

// ===============================
// Cancel reasons
// ===============================

const (
	ReasonClient  = "client"
	ReasonAdmin   = "admin"
	ReasonExpired = "payment_expired"
)

// ===============================
// Validations
// ===============================

// CanConfirm: only a pending booking may be confirmed.
func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.Conflict("booking_not_pending")
	}
	return nil
}

// CanCancel: pending may be cancelled, cancelled is a no-op, confirmed is terminal.
func CanCancel(current Status) (noop bool, err error) {
	switch current {
	case StatusPending:
		return false, nil
	case StatusCancelled:
		return true, nil
	default:
		return false, httperr.Conflict("booking_not_cancellable")
	}
}

func InitialStatus() Status {
	return StatusPending
}
