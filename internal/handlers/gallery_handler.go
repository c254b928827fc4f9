package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/httpresp"
	"github.com/BruksfildServices01/nail-salon/internal/middleware"
	"github.com/BruksfildServices01/nail-salon/internal/usecase/gallery"
)

const maxUploadBytes = 10 << 20

type GalleryHandler struct {
	gallery *gallery.Service
}

func NewGalleryHandler(gallery *gallery.Service) *GalleryHandler {
	return &GalleryHandler{gallery: gallery}
}

type UpdateGalleryImageRequest struct {
	Title     *string `json:"title,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

func (h *GalleryHandler) PublicList(c *gin.Context) {
	images, err := h.gallery.List(c.Request.Context(), true)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, images)
}

func (h *GalleryHandler) List(c *gin.Context) {
	images, err := h.gallery.List(c.Request.Context(), false)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, images)
}

// Upload expects a multipart form with the file under "image" and optional
// "title" and "sort_order" fields.
func (h *GalleryHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagen obligatoria.")
		return
	}
	if header.Size > maxUploadBytes {
		httperr.BadRequest(c, "image_too_large", "La imagen supera 10 MB.")
		return
	}

	sortOrder := 0
	if v := strings.TrimSpace(c.PostForm("sort_order")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httperr.BadRequest(c, "invalid_request", "Orden inválido.")
			return
		}
		sortOrder = n
	}

	file, err := header.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "No se pudo leer la imagen.")
		return
	}
	defer file.Close()

	img, err := h.gallery.Upload(c.Request.Context(), gallery.UploadInput{
		Title:     c.PostForm("title"),
		SortOrder: sortOrder,
		Image:     file,
	}, middleware.AdminID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, img)
}

func (h *GalleryHandler) Update(c *gin.Context) {
	id, ok := imageID(c)
	if !ok {
		return
	}

	var req UpdateGalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	img, err := h.gallery.Update(c.Request.Context(), id, gallery.UpdateInput{
		Title:     req.Title,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	}, middleware.AdminID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, img)
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	id, ok := imageID(c)
	if !ok {
		return
	}

	if err := h.gallery.Delete(c.Request.Context(), id, middleware.AdminID(c)); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func imageID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.NotFoundJSON(c, "image_not_found", "Imagen no encontrada.")
		return 0, false
	}
	return uint(id), true
}
