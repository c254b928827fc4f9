package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/nail-salon/internal/audit"
	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/middleware"
	"github.com/BruksfildServices01/nail-salon/internal/models"
	"github.com/BruksfildServices01/nail-salon/internal/notify"
)

type SettingsStore interface {
	GetPaymentSettings(ctx context.Context) (*models.PaymentSettings, error)
	SavePaymentSettings(ctx context.Context, s *models.PaymentSettings) error
	GetWhatsAppSettings(ctx context.Context) (*models.WhatsAppSettings, error)
	SaveWhatsAppSettings(ctx context.Context, s *models.WhatsAppSettings) error
}

type SettingsHandler struct {
	store SettingsStore
	audit *audit.Dispatcher
}

func NewSettingsHandler(store SettingsStore, audit *audit.Dispatcher) *SettingsHandler {
	return &SettingsHandler{store: store, audit: audit}
}

// --------- Requests ---------

type WhatsAppSettingsRequest struct {
	AdminPhone     string `json:"admin_phone"`
	Enabled        bool   `json:"enabled"`
	ClientTemplate string `json:"client_template"`
	AdminTemplate  string `json:"admin_template"`
}

type PaymentSettingsRequest struct {
	ATHBusinessName    string `json:"ath_business_name"`
	ATHPublicToken     string `json:"ath_public_token"`
	DepositCents       int64  `json:"deposit_cents" binding:"min=0"`
	MercadoPagoEnabled bool   `json:"mercadopago_enabled"`
}

// --------- WhatsApp ---------

func (h *SettingsHandler) GetWhatsApp(c *gin.Context) {
	s, err := h.store.GetWhatsAppSettings(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) UpdateWhatsApp(c *gin.Context) {
	var req WhatsAppSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	phone := strings.TrimSpace(req.AdminPhone)
	if phone != "" && len(notify.Digits(phone)) < 7 {
		httperr.BadRequest(c, "invalid_phone", "Teléfono inválido.")
		return
	}

	s := &models.WhatsAppSettings{
		AdminPhone:     phone,
		Enabled:        req.Enabled,
		ClientTemplate: req.ClientTemplate,
		AdminTemplate:  req.AdminTemplate,
	}
	if err := h.store.SaveWhatsAppSettings(c.Request.Context(), s); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		AdminID: middleware.AdminID(c),
		Action:  "whatsapp_settings_updated",
		Entity:  "settings",
	})

	h.GetWhatsApp(c)
}

// --------- Payments ---------

func (h *SettingsHandler) GetPayment(c *gin.Context) {
	s, err := h.store.GetPaymentSettings(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) UpdatePayment(c *gin.Context) {
	var req PaymentSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	s := &models.PaymentSettings{
		ATHBusinessName:    strings.TrimSpace(req.ATHBusinessName),
		ATHPublicToken:     strings.TrimSpace(req.ATHPublicToken),
		DepositCents:       req.DepositCents,
		MercadoPagoEnabled: req.MercadoPagoEnabled,
	}
	if err := h.store.SavePaymentSettings(c.Request.Context(), s); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		AdminID:  middleware.AdminID(c),
		Action:   "payment_settings_updated",
		Entity:   "settings",
		Metadata: map[string]any{"deposit_cents": s.DepositCents},
	})

	c.JSON(http.StatusOK, s)
}
