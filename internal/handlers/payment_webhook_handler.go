package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/payments"
	ucPayment "github.com/BruksfildServices01/nail-salon/internal/usecase/payment"
)

const maxWebhookBytes = 64 << 10

type PaymentWebhookHandler struct {
	ath       *ucPayment.HandleATHCallback
	mp        *ucPayment.HandleMercadoPagoWebhook
	athSecret string
	log       zerolog.Logger
}

func NewPaymentWebhookHandler(
	ath *ucPayment.HandleATHCallback,
	mp *ucPayment.HandleMercadoPagoWebhook,
	athSecret string,
	log zerolog.Logger,
) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{
		ath:       ath,
		mp:        mp,
		athSecret: athSecret,
		log:       log,
	}
}

// ======================================================
// ATH MÓVIL
// ======================================================

// ATHCallback verifies the signature over the raw body before decoding it.
func (h *PaymentWebhookHandler) ATHCallback(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if !payments.VerifyATH(h.athSecret, body, c.GetHeader(payments.ATHSignatureHeader)) {
		h.log.Warn().Str("ip", c.ClientIP()).Msg("ath callback with bad signature")
		httperr.Unauthorized(c, "invalid_signature", "Firma inválida.")
		return
	}

	var cb payments.ATHCallback
	if err := json.Unmarshal(body, &cb); err != nil || cb.BookingID == "" || cb.ReferenceNumber == "" {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	res, err := h.ath.Execute(c.Request.Context(), cb)
	if err != nil {
		h.log.Warn().Err(err).Str("booking_id", cb.BookingID).Msg("ath callback rejected")
		httperr.FromError(c, err)
		return
	}
	if res == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "confirmed", "booking_id": res.Booking.ID})
}

// ======================================================
// MERCADO PAGO
// ======================================================

type mpNotification struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
	Data  struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
	ID json.RawMessage `json:"id"`
}

// MercadoPagoWebhook accepts both the JSON notification and the legacy
// query-string form (?topic=payment&id=...).
func (h *PaymentWebhookHandler) MercadoPagoWebhook(c *gin.Context) {
	body, _ := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))

	kind, paymentID := mercadoPagoPaymentID(c, body)
	if kind != "" && kind != "payment" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
	if paymentID <= 0 {
		httperr.BadRequest(c, "invalid_request", "Notificación inválida.")
		return
	}

	res, err := h.mp.Execute(c.Request.Context(), paymentID)
	if err != nil {
		h.log.Warn().Err(err).Int("payment_id", paymentID).Msg("mercadopago webhook rejected")
		httperr.FromError(c, err)
		return
	}
	if res == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "confirmed", "booking_id": res.Booking.ID})
}

func mercadoPagoPaymentID(c *gin.Context, body []byte) (string, int) {
	var n mpNotification
	if len(body) > 0 {
		_ = json.Unmarshal(body, &n)
	}

	kind := firstNonEmpty(n.Type, n.Topic, c.Query("type"), c.Query("topic"))

	if id := rawID(n.Data.ID); id > 0 {
		return kind, id
	}
	if id := rawID(n.ID); id > 0 {
		return kind, id
	}
	for _, key := range []string{"data.id", "id"} {
		if id, err := strconv.Atoi(c.Query(key)); err == nil && id > 0 {
			return kind, id
		}
	}
	return kind, 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// rawID reads an id sent either as a JSON number or a string.
func rawID(raw json.RawMessage) int {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return id
}
