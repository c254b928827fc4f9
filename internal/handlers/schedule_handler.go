package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/usecase/schedule"
)

type ScheduleHandler struct {
	store *schedule.Store
}

func NewScheduleHandler(store *schedule.Store) *ScheduleHandler {
	return &ScheduleHandler{store: store}
}

// --------- Requests ---------

type GenerateScheduleRequest struct {
	Year int `json:"year" binding:"required"`
}

type DayStatusRequest struct {
	IsOpen *bool `json:"isOpen" binding:"required"`
}

type SlotRequest struct {
	Available *bool `json:"available" binding:"required"`
}

type BulkDaysRequest struct {
	Dates  []string `json:"dates" binding:"required,min=1"`
	IsOpen *bool    `json:"isOpen" binding:"required"`
}

type BulkSlotsRequest struct {
	Dates     []string `json:"dates" binding:"required,min=1"`
	Times     []string `json:"times" binding:"required,min=1"`
	Available *bool    `json:"available" binding:"required"`
}

type ActivateDaysRequest struct {
	Dates []string `json:"dates" binding:"required,min=1"`
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return false
	}
	return true
}

// --------- Reads ---------

func (h *ScheduleHandler) Month(c *gin.Context) {
	year, month, ok := yearMonthQuery(c)
	if !ok {
		return
	}

	days, err := h.store.Month(c.Request.Context(), year, time.Month(month))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"days":  days,
	})
}

func (h *ScheduleHandler) Day(c *gin.Context) {
	day, ok, err := h.store.Day(c.Request.Context(), c.Param("date"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if !ok {
		httperr.NotFoundJSON(c, "date_not_found", "Fecha no configurada en el calendario.")
		return
	}

	c.JSON(http.StatusOK, day)
}

// --------- Mutations ---------

func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req GenerateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	n, err := h.store.GenerateDefault(c.Request.Context(), req.Year)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"year": req.Year, "days": n})
}

func (h *ScheduleHandler) UpdateDay(c *gin.Context) {
	var req DayStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	date := c.Param("date")
	if err := h.store.UpdateDayStatus(c.Request.Context(), date, *req.IsOpen); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.Day(c)
}

func (h *ScheduleHandler) UpdateSlot(c *gin.Context) {
	var req SlotRequest
	if !bindJSON(c, &req) {
		return
	}

	date := c.Param("date")
	if err := h.store.UpdateTimeSlot(c.Request.Context(), date, c.Param("time"), *req.Available); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.Day(c)
}

func (h *ScheduleHandler) UpdateDays(c *gin.Context) {
	var req BulkDaysRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.store.UpdateMultipleDays(c.Request.Context(), req.Dates, *req.IsOpen)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ScheduleHandler) UpdateSlots(c *gin.Context) {
	var req BulkSlotsRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.store.UpdateTimeSlotBulk(c.Request.Context(), req.Dates, req.Times, *req.Available)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ScheduleHandler) Activate(c *gin.Context) {
	var req ActivateDaysRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.store.ActivateDays(c.Request.Context(), req.Dates)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
