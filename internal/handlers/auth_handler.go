package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/middleware"
	"github.com/BruksfildServices01/nail-salon/internal/models"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	db     *gorm.DB
	secret string
}

func NewAuthHandler(db *gorm.DB, secret string) *AuthHandler {
	return &AuthHandler{db: db, secret: secret}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var admin models.AdminUser
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&admin).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Credenciales inválidas.")
			return
		}
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Credenciales inválidas.")
		return
	}

	token, err := middleware.IssueToken(h.secret, admin.ID, admin.Email, tokenTTL)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "No se pudo iniciar sesión.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin": gin.H{
			"id":    admin.ID,
			"name":  admin.Name,
			"email": admin.Email,
		},
		"token": token,
	})
}

// Me returns the admin behind the current token.
func (h *AuthHandler) Me(c *gin.Context) {
	id := middleware.AdminID(c)
	if id == nil {
		httperr.Unauthorized(c, "admin_not_in_context", "Sesión inválida.")
		return
	}

	var admin models.AdminUser
	if err := h.db.WithContext(c.Request.Context()).First(&admin, *id).Error; err != nil {
		httperr.Unauthorized(c, "admin_not_found", "Sesión inválida.")
		return
	}

	c.JSON(http.StatusOK, admin)
}
