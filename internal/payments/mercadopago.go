package payments

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/nail-salon/internal/models"
)

const (
	MercadoPagoApproved = "approved"
	currencyID          = "USD"
)

var ErrMercadoPagoDisabled = errors.New("mercadopago not configured")

type PreferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type PaymentGetter interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// PaymentStatus is what the webhook needs from a fetched payment.
type PaymentStatus struct {
	ID                int
	Status            string
	ExternalReference string
	AmountCents       int64
}

func (p PaymentStatus) Approved() bool {
	return p.Status == MercadoPagoApproved
}

type MercadoPago struct {
	preferences     PreferenceCreator
	payments        PaymentGetter
	notificationURL string
}

func NewMercadoPago(preferences PreferenceCreator, payments PaymentGetter, notificationURL string) *MercadoPago {
	return &MercadoPago{
		preferences:     preferences,
		payments:        payments,
		notificationURL: notificationURL,
	}
}

// NewMercadoPagoFromToken returns nil when no access token is configured.
func NewMercadoPagoFromToken(accessToken, notificationURL string) (*MercadoPago, error) {
	if accessToken == "" {
		return nil, nil
	}
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, err
	}
	return NewMercadoPago(preference.NewClient(cfg), payment.NewClient(cfg), notificationURL), nil
}

// CreateCheckout opens a card checkout for the booking deposit and returns the
// URL the client is redirected to.
func (m *MercadoPago) CreateCheckout(ctx context.Context, b *models.Booking) (string, error) {
	if m == nil {
		return "", ErrMercadoPagoDisabled
	}

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:          b.ID,
				Title:       fmt.Sprintf("Depósito: %s (%s %s)", b.Service, b.Date, b.Time),
				Quantity:    1,
				UnitPrice:   float64(b.DepositAmount) / 100,
				CurrencyID:  currencyID,
				Description: "Depósito de reserva",
			},
		},
		ExternalReference: b.ID,
		NotificationURL:   m.notificationURL,
	}

	res, err := m.preferences.Create(ctx, req)
	if err != nil {
		return "", err
	}
	return res.InitPoint, nil
}

func (m *MercadoPago) FetchPayment(ctx context.Context, id int) (*PaymentStatus, error) {
	if m == nil {
		return nil, ErrMercadoPagoDisabled
	}

	p, err := m.payments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PaymentStatus{
		ID:                p.ID,
		Status:            p.Status,
		ExternalReference: p.ExternalReference,
		AmountCents:       int64(math.Round(p.TransactionAmount * 100)),
	}, nil
}
