package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/httpresp"
	"github.com/BruksfildServices01/nail-salon/internal/models"
	"github.com/BruksfildServices01/nail-salon/internal/timezone"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

type auditLogQuery struct {
	Actor    string `form:"actor" binding:"omitempty,oneof=admin system"`
	AdminID  uint   `form:"admin_id"`
	Action   string `form:"action"`
	Entity   string `form:"entity"`
	EntityID string `form:"entity_id"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

func (q auditLogQuery) scope(db *gorm.DB) (*gorm.DB, error) {
	if q.Actor != "" {
		db = db.Where("actor = ?", q.Actor)
	}
	if q.AdminID != 0 {
		db = db.Where("admin_id = ?", q.AdminID)
	}
	if q.Action != "" {
		db = db.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		db = db.Where("entity = ?", q.Entity)
	}
	if q.EntityID != "" {
		db = db.Where("entity_id = ?", q.EntityID)
	}

	// date bounds are inclusive days
	if q.From != "" {
		from, err := time.Parse(timezone.DateLayout, q.From)
		if err != nil {
			return nil, err
		}
		db = db.Where("created_at >= ?", from)
	}
	if q.To != "" {
		to, err := time.Parse(timezone.DateLayout, q.To)
		if err != nil {
			return nil, err
		}
		db = db.Where("created_at < ?", to.AddDate(0, 0, 1))
	}
	return db, nil
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	req := auditLogQuery{Page: 1, Limit: 50}
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.BadRequest(c, "invalid_query", "Filtros inválidos.")
		return
	}

	q, err := req.scope(h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{}))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida, use AAAA-MM-DD.")
		return
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Error al contar registros.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(req.Limit).
		Offset((req.Page - 1) * req.Limit).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "audit_list_failed", "Error al listar registros.")
		return
	}

	httpresp.Page(c, logs, req.Page, req.Limit, total)
}
