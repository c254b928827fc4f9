package payment

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/nail-salon/internal/domain/booking"
	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/models"
	"github.com/BruksfildServices01/nail-salon/internal/payments"
	"github.com/BruksfildServices01/nail-salon/internal/usecase/booking"
)

type BookingReader interface {
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
}

type SettingsSource interface {
	GetPaymentSettings(ctx context.Context) (*models.PaymentSettings, error)
}

// ======================================================
// Mercado Pago checkout
// ======================================================

type StartCheckout struct {
	bookings BookingReader
	settings SettingsSource
	gateway  *payments.MercadoPago
	log      zerolog.Logger
}

func NewStartCheckout(
	bookings BookingReader,
	settings SettingsSource,
	gateway *payments.MercadoPago,
	log zerolog.Logger,
) *StartCheckout {
	return &StartCheckout{
		bookings: bookings,
		settings: settings,
		gateway:  gateway,
		log:      log,
	}
}

// Execute returns the checkout URL for a pending booking's deposit.
func (uc *StartCheckout) Execute(ctx context.Context, bookingID string) (string, error) {
	s, err := uc.settings.GetPaymentSettings(ctx)
	if err != nil {
		return "", err
	}
	if !s.MercadoPagoEnabled || uc.gateway == nil {
		return "", httperr.ErrBusiness("mercadopago_disabled")
	}

	b, err := uc.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if err := domain.CanConfirm(domain.Status(b.Status)); err != nil {
		return "", err
	}

	url, err := uc.gateway.CreateCheckout(ctx, b)
	if err != nil {
		uc.log.Error().Err(err).Str("booking_id", b.ID).Msg("mercadopago preference failed")
		return "", httperr.ErrBusiness("payment_gateway_error")
	}
	return url, nil
}

// ======================================================
// Callbacks
// ======================================================

type HandleATHCallback struct {
	bookings BookingReader
	confirm  *booking.ConfirmPayment
}

func NewHandleATHCallback(bookings BookingReader, confirm *booking.ConfirmPayment) *HandleATHCallback {
	return &HandleATHCallback{bookings: bookings, confirm: confirm}
}

// Execute confirms the booking for a completed payment. Other statuses are
// acknowledged and ignored (nil result, nil error).
func (uc *HandleATHCallback) Execute(ctx context.Context, cb payments.ATHCallback) (*booking.ConfirmResult, error) {
	if !cb.Completed() {
		return nil, nil
	}

	b, err := uc.bookings.GetBooking(ctx, cb.BookingID)
	if err != nil {
		return nil, err
	}
	if cb.TotalCents() < b.DepositAmount {
		return nil, httperr.Validation("payment_amount_mismatch")
	}

	return confirmOnce(ctx, uc.confirm, uc.bookings, booking.ConfirmInput{
		BookingID: b.ID,
		Method:    domain.PaymentATH,
		Reference: cb.ReferenceNumber,
	})
}

type HandleMercadoPagoWebhook struct {
	bookings BookingReader
	confirm  *booking.ConfirmPayment
	gateway  *payments.MercadoPago
	log      zerolog.Logger
}

func NewHandleMercadoPagoWebhook(
	bookings BookingReader,
	confirm *booking.ConfirmPayment,
	gateway *payments.MercadoPago,
	log zerolog.Logger,
) *HandleMercadoPagoWebhook {
	return &HandleMercadoPagoWebhook{
		bookings: bookings,
		confirm:  confirm,
		gateway:  gateway,
		log:      log,
	}
}

// Execute looks the payment up at Mercado Pago instead of trusting the
// notification body.
func (uc *HandleMercadoPagoWebhook) Execute(ctx context.Context, paymentID int) (*booking.ConfirmResult, error) {
	if uc.gateway == nil {
		return nil, httperr.ErrBusiness("mercadopago_disabled")
	}

	p, err := uc.gateway.FetchPayment(ctx, paymentID)
	if err != nil {
		uc.log.Error().Err(err).Int("payment_id", paymentID).Msg("mercadopago payment lookup failed")
		return nil, httperr.ErrBusiness("payment_gateway_error")
	}
	if !p.Approved() {
		return nil, nil
	}

	b, err := uc.bookings.GetBooking(ctx, p.ExternalReference)
	if err != nil {
		return nil, err
	}
	if p.AmountCents < b.DepositAmount {
		return nil, httperr.Validation("payment_amount_mismatch")
	}

	return confirmOnce(ctx, uc.confirm, uc.bookings, booking.ConfirmInput{
		BookingID: b.ID,
		Method:    domain.PaymentMercadoPago,
		Reference: strconv.Itoa(p.ID),
	})
}

// confirmOnce treats a redelivered notification for an already confirmed
// payment as success.
func confirmOnce(
	ctx context.Context,
	confirm *booking.ConfirmPayment,
	bookings BookingReader,
	in booking.ConfirmInput,
) (*booking.ConfirmResult, error) {

	res, err := confirm.Execute(ctx, in)
	if err == nil || !httperr.IsBusiness(err, "booking_not_pending") {
		return res, err
	}

	b, getErr := bookings.GetBooking(ctx, in.BookingID)
	if getErr != nil {
		return nil, err
	}
	if b.Status == string(domain.StatusConfirmed) &&
		b.PaymentMethod != nil && *b.PaymentMethod == string(in.Method) &&
		b.PaymentReference == in.Reference {
		return &booking.ConfirmResult{Booking: b}, nil
	}
	return nil, err
}
