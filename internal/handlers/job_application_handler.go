package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nail-salon/internal/audit"
	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/httpresp"
	"github.com/BruksfildServices01/nail-salon/internal/middleware"
	"github.com/BruksfildServices01/nail-salon/internal/models"
	"github.com/BruksfildServices01/nail-salon/internal/validators"
)

var applicationStatuses = map[string]bool{
	"new":       true,
	"reviewed":  true,
	"contacted": true,
	"rejected":  true,
	"hired":     true,
}

type JobApplicationHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewJobApplicationHandler(db *gorm.DB, audit *audit.Dispatcher) *JobApplicationHandler {
	return &JobApplicationHandler{db: db, audit: audit}
}

// --------- Requests ---------

type SubmitApplicationRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email"`
	Phone      string `json:"phone" binding:"required"`
	Position   string `json:"position"`
	Experience string `json:"experience"`
	Message    string `json:"message"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --------- Public ---------

func (h *JobApplicationHandler) Submit(c *gin.Context) {
	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	app := models.JobApplication{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:      strings.TrimSpace(req.Phone),
		Position:   strings.TrimSpace(req.Position),
		Experience: strings.TrimSpace(req.Experience),
		Message:    strings.TrimSpace(req.Message),
		Status:     "new",
	}

	if app.Name == "" {
		httperr.BadRequest(c, "client_name_required", "El nombre es obligatorio.")
		return
	}
	if !validators.IsPhone(app.Phone) {
		httperr.BadRequest(c, "invalid_phone", "Teléfono inválido.")
		return
	}
	if app.Email != "" && !validators.IsEmail(app.Email) {
		httperr.BadRequest(c, "invalid_email", "Correo electrónico inválido.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&app).Error; err != nil {
		httperr.Internal(c, "failed_to_save_application", "Error al enviar la solicitud.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "job_application_received",
		Entity:   "job_application",
		EntityID: strconv.FormatUint(uint64(app.ID), 10),
	})

	c.JSON(http.StatusCreated, gin.H{"id": app.ID, "status": app.Status})
}

// --------- Admin ---------

func (h *JobApplicationHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !applicationStatuses[status] {
			httperr.BadRequest(c, "invalid_status", "Estado inválido.")
			return
		}
		q = q.Where("status = ?", status)
	}

	var apps []models.JobApplication
	if err := q.Order("created_at DESC").Find(&apps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_applications", "Error al listar solicitudes.")
		return
	}

	httpresp.List(c, apps)
}

func (h *JobApplicationHandler) UpdateStatus(c *gin.Context) {
	app, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}
	if !applicationStatuses[req.Status] {
		httperr.BadRequest(c, "invalid_status", "Estado inválido.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(app).
		Update("status", req.Status).Error; err != nil {
		httperr.Internal(c, "failed_to_update_application", "Error al actualizar la solicitud.")
		return
	}
	app.Status = req.Status

	h.audit.Dispatch(audit.Event{
		AdminID:  middleware.AdminID(c),
		Action:   "job_application_status",
		Entity:   "job_application",
		EntityID: strconv.FormatUint(uint64(app.ID), 10),
		Metadata: map[string]any{"status": req.Status},
	})

	c.JSON(http.StatusOK, app)
}

func (h *JobApplicationHandler) Delete(c *gin.Context) {
	app, ok := h.find(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(app).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_application", "Error al eliminar la solicitud.")
		return
	}

	h.audit.Dispatch(audit.Event{
		AdminID:  middleware.AdminID(c),
		Action:   "job_application_deleted",
		Entity:   "job_application",
		EntityID: strconv.FormatUint(uint64(app.ID), 10),
	})

	c.Status(http.StatusNoContent)
}

func (h *JobApplicationHandler) find(c *gin.Context) (*models.JobApplication, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.NotFoundJSON(c, "application_not_found", "Solicitud no encontrada.")
		return nil, false
	}

	var app models.JobApplication
	if err := h.db.WithContext(c.Request.Context()).First(&app, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFoundJSON(c, "application_not_found", "Solicitud no encontrada.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_application", "Error al obtener la solicitud.")
		return nil, false
	}
	return &app, true
}
