package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/models"
	"github.com/BruksfildServices01/nail-salon/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/nail-salon/internal/usecase/booking"
	ucPayment "github.com/BruksfildServices01/nail-salon/internal/usecase/payment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PaymentSettingsReader interface {
	GetPaymentSettings(ctx context.Context) (*models.PaymentSettings, error)
}

type PublicHandler struct {
	availability *availability.GetAvailableSlots
	create       *ucBooking.CreateBooking
	get          *ucBooking.GetBooking
	checkout     *ucPayment.StartCheckout
	settings     PaymentSettingsReader
}

func NewPublicHandler(
	availability *availability.GetAvailableSlots,
	create *ucBooking.CreateBooking,
	get *ucBooking.GetBooking,
	checkout *ucPayment.StartCheckout,
	settings PaymentSettingsReader,
) *PublicHandler {
	return &PublicHandler{
		availability: availability,
		create:       create,
		get:          get,
		checkout:     checkout,
		settings:     settings,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	Service     string `json:"service"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // HH:MM
}

// publicBooking is what the payment page may see: no contact details.
type publicBooking struct {
	ID              string     `json:"id"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	Service         string     `json:"service"`
	ClientName      string     `json:"client_name"`
	Status          string     `json:"status"`
	PaymentDeadline *time.Time `json:"payment_deadline"`
	DepositAmount   int64      `json:"deposit_amount"`
}

type publicPayment struct {
	ATHBusinessName    string `json:"ath_business_name"`
	ATHPublicToken     string `json:"ath_public_token"`
	DepositCents       int64  `json:"deposit_cents"`
	MercadoPagoEnabled bool   `json:"mercadopago_enabled"`
}

func toPublicBooking(b *models.Booking) publicBooking {
	return publicBooking{
		ID:              b.ID,
		Date:            b.Date,
		Time:            b.Time,
		Service:         b.Service,
		ClientName:      b.ClientName,
		Status:          b.Status,
		PaymentDeadline: b.PaymentDeadline,
		DepositAmount:   b.DepositAmount,
	}
}

func (h *PublicHandler) paymentInfo(c *gin.Context) publicPayment {
	s, err := h.settings.GetPaymentSettings(c.Request.Context())
	if err != nil {
		return publicPayment{}
	}
	return publicPayment{
		ATHBusinessName:    s.ATHBusinessName,
		ATHPublicToken:     s.ATHPublicToken,
		DepositCents:       s.DepositCents,
		MercadoPagoEnabled: s.MercadoPagoEnabled,
	}
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "invalid_date", "Fecha obligatoria.")
		return
	}

	slots, err := h.availability.Upcoming(c.Request.Context(), date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}

func (h *PublicHandler) AvailabilityMonth(c *gin.Context) {
	year, month, ok := yearMonthQuery(c)
	if !ok {
		return
	}

	dates, err := h.availability.UpcomingMonth(c.Request.Context(), year, time.Month(month))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"dates": dates,
	})
}

////////////////////////////////////////////////////////
// BOOKINGS
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateInput{
		Date:        req.Date,
		Time:        req.Time,
		Service:     req.Service,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking": toPublicBooking(b),
		"payment": h.paymentInfo(c),
	})
}

func (h *PublicHandler) GetBooking(c *gin.Context) {
	b, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"booking": toPublicBooking(b),
		"payment": h.paymentInfo(c),
	})
}

func (h *PublicHandler) Checkout(c *gin.Context) {
	url, err := h.checkout.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"init_point": url})
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func yearMonthQuery(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Año inválido.")
		return 0, 0, false
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mes inválido.")
		return 0, 0, false
	}

	return year, month, true
}
