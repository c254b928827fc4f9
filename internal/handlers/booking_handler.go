package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/nail-salon/internal/domain/booking"
	"github.com/BruksfildServices01/nail-salon/internal/export"
	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/httpresp"
	"github.com/BruksfildServices01/nail-salon/internal/middleware"
	"github.com/BruksfildServices01/nail-salon/internal/timezone"
	ucBooking "github.com/BruksfildServices01/nail-salon/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	list     *ucBooking.ListBookings
	get      *ucBooking.GetBooking
	manual   *ucBooking.CreateManualBooking
	confirm  *ucBooking.ConfirmPayment
	cancel   *ucBooking.CancelBooking
	setPrice *ucBooking.SetPrice
	remove   *ucBooking.DeleteBooking
	expire   *ucBooking.ExpireStalePending
	clock    timezone.Clock
}

func NewBookingHandler(
	list *ucBooking.ListBookings,
	get *ucBooking.GetBooking,
	manual *ucBooking.CreateManualBooking,
	confirm *ucBooking.ConfirmPayment,
	cancel *ucBooking.CancelBooking,
	setPrice *ucBooking.SetPrice,
	remove *ucBooking.DeleteBooking,
	expire *ucBooking.ExpireStalePending,
	clock timezone.Clock,
) *BookingHandler {
	return &BookingHandler{
		list:     list,
		get:      get,
		manual:   manual,
		confirm:  confirm,
		cancel:   cancel,
		setPrice: setPrice,
		remove:   remove,
		expire:   expire,
		clock:    clock,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ManualBookingRequest struct {
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	Service     string `json:"service"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type SetPriceRequest struct {
	TotalPrice *int64  `json:"total_price" binding:"required"` // cents
	Notes      *string `json:"notes"`
}

func filterFromQuery(c *gin.Context) domain.ListFilter {
	return domain.ListFilter{
		Status: strings.TrimSpace(c.Query("status")),
		Date:   strings.TrimSpace(c.Query("date")),
		From:   strings.TrimSpace(c.Query("from")),
		To:     strings.TrimSpace(c.Query("to")),
		Query:  strings.TrimSpace(c.Query("query")),
	}
}

// ======================================================
// LIST / GET
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.list.Execute(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// CREATE (manual entry)
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req ManualBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	res, err := h.manual.Execute(c.Request.Context(), ucBooking.CreateInput{
		Date:        req.Date,
		Time:        req.Time,
		Service:     req.Service,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
	}, middleware.AdminID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, res)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	res, err := h.confirm.ConfirmManually(c.Request.Context(), c.Param("id"), middleware.AdminID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	var req CancelBookingRequest
	// body is optional
	_ = c.ShouldBindJSON(&req)

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = domain.ReasonAdmin
	}

	b, err := h.cancel.Execute(c.Request.Context(), c.Param("id"), reason, middleware.AdminID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) SetPrice(c *gin.Context) {
	var req SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	b, err := h.setPrice.Execute(
		c.Request.Context(),
		c.Param("id"),
		*req.TotalPrice,
		req.Notes,
		middleware.AdminID(c),
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), c.Param("id"), middleware.AdminID(c)); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) Expire(c *gin.Context) {
	n, err := h.expire.Execute(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expired": n})
}

// ======================================================
// EXPORT
// ======================================================

func (h *BookingHandler) Export(c *gin.Context) {
	bookings, err := h.list.Execute(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	filename := fmt.Sprintf("citas-%s.xlsx", h.clock().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := export.WriteBookings(c.Writer, bookings); err != nil {
		_ = c.Error(err)
	}
}
