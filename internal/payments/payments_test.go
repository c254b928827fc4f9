package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/nail-salon/internal/models"
)

func TestVerifyATH(t *testing.T) {
	body := []byte(`{"booking_id":"b1","status":"completed"}`)
	sig := SignATH("s3cret", body)

	assert.True(t, VerifyATH("s3cret", body, sig))
	assert.False(t, VerifyATH("other", body, sig))
	assert.False(t, VerifyATH("s3cret", []byte(`{}`), sig))
	assert.False(t, VerifyATH("s3cret", body, "zz"))
	assert.False(t, VerifyATH("", body, SignATH("", body)))
}

func TestATHCallback(t *testing.T) {
	cb := ATHCallback{Status: "COMPLETED", Total: 10.5}
	assert.True(t, cb.Completed())
	assert.Equal(t, int64(1050), cb.TotalCents())

	assert.False(t, ATHCallback{Status: "cancelled"}.Completed())
}

type mockPreferences struct{ mock.Mock }

func (m *mockPreferences) Create(ctx context.Context, r preference.Request) (*preference.Response, error) {
	args := m.Called(ctx, r)
	res, _ := args.Get(0).(*preference.Response)
	return res, args.Error(1)
}

type mockPayments struct{ mock.Mock }

func (m *mockPayments) Get(ctx context.Context, id int) (*payment.Response, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*payment.Response)
	return res, args.Error(1)
}

func TestCreateCheckout(t *testing.T) {
	prefs := new(mockPreferences)
	prefs.On("Create", mock.Anything, mock.MatchedBy(func(r preference.Request) bool {
		return r.ExternalReference == "b-1" &&
			r.NotificationURL == "https://salon.test/hook" &&
			len(r.Items) == 1 &&
			r.Items[0].UnitPrice == 10 &&
			r.Items[0].Quantity == 1
	})).Return(&preference.Response{InitPoint: "https://mp.test/checkout"}, nil)

	mp := NewMercadoPago(prefs, nil, "https://salon.test/hook")
	url, err := mp.CreateCheckout(context.Background(), &models.Booking{
		ID:            "b-1",
		Service:       "Pedicura",
		DepositAmount: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://mp.test/checkout", url)
	prefs.AssertExpectations(t)
}

func TestFetchPayment(t *testing.T) {
	pays := new(mockPayments)
	pays.On("Get", mock.Anything, 99).Return(&payment.Response{
		ID:                99,
		Status:            "approved",
		ExternalReference: "b-1",
		TransactionAmount: 10,
	}, nil)
	pays.On("Get", mock.Anything, 5).Return(nil, errors.New("not found"))

	mp := NewMercadoPago(nil, pays, "")
	p, err := mp.FetchPayment(context.Background(), 99)
	require.NoError(t, err)
	assert.True(t, p.Approved())
	assert.Equal(t, "b-1", p.ExternalReference)
	assert.Equal(t, int64(1000), p.AmountCents)

	_, err = mp.FetchPayment(context.Background(), 5)
	assert.Error(t, err)
}

func TestNilMercadoPago(t *testing.T) {
	mp, err := NewMercadoPagoFromToken("", "")
	require.NoError(t, err)
	assert.Nil(t, mp)

	_, err = mp.CreateCheckout(context.Background(), &models.Booking{})
	assert.ErrorIs(t, err, ErrMercadoPagoDisabled)
	_, err = mp.FetchPayment(context.Background(), 1)
	assert.ErrorIs(t, err, ErrMercadoPagoDisabled)
}
