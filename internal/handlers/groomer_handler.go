package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shampooches/salon-scheduler/internal/audit"
	"github.com/shampooches/salon-scheduler/internal/httperr"
	"github.com/shampooches/salon-scheduler/internal/httpresp"
	"github.com/shampooches/salon-scheduler/internal/infra/storage"
	"github.com/shampooches/salon-scheduler/internal/middleware"
	"github.com/shampooches/salon-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

const maxImageUploadBytes = 8 << 20

type GroomerHandler struct {
	db     *gorm.DB
	audit  *audit.Dispatcher
	images *storage.ImageStore
}

func NewGroomerHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	images *storage.ImageStore,
) *GroomerHandler {
	return &GroomerHandler{db: db, audit: auditDispatcher, images: images}
}

// ======================================================
// REQUESTS
// ======================================================

type GroomerRequest struct {
	Name         string `json:"name" binding:"required"`
	Bio          string `json:"bio"`
	Specialties  string `json:"specialties"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

// ======================================================
// CRUD
// ======================================================

func (h *GroomerHandler) List(c *gin.Context) {
	var groomers []models.Groomer
	if err := h.db.Order("display_order ASC, name ASC").Find(&groomers).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load groomers.")
		return
	}
	httpresp.List(c, groomers)
}

func (h *GroomerHandler) Create(c *gin.Context) {
	actorID := middleware.UserID(c)

	var req GroomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid groomer data.")
		return
	}

	groomer := models.Groomer{
		Name:         strings.TrimSpace(req.Name),
		Bio:          req.Bio,
		Specialties:  req.Specialties,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}
	if req.IsActive != nil {
		groomer.IsActive = *req.IsActive
	}

	if err := h.db.Create(&groomer).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not save groomer.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "groomer_created",
		Entity:   "groomer",
		EntityID: &groomer.ID,
	})

	httpresp.Created(c, groomer)
}

func (h *GroomerHandler) Update(c *gin.Context) {
	actorID := middleware.UserID(c)

	groomer, ok := h.find(c)
	if !ok {
		return
	}

	var req GroomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid groomer data.")
		return
	}

	groomer.Name = strings.TrimSpace(req.Name)
	groomer.Bio = req.Bio
	groomer.Specialties = req.Specialties
	groomer.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		groomer.IsActive = *req.IsActive
	}

	if err := h.db.Save(groomer).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not save groomer.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "groomer_updated",
		Entity:   "groomer",
		EntityID: &groomer.ID,
	})

	httpresp.OK(c, groomer)
}

// ======================================================
// PHOTO
// ======================================================

// UploadImage accepts a multipart photo, converts it to webp in object
// storage and replaces the previous one.
func (h *GroomerHandler) UploadImage(c *gin.Context) {
	actorID := middleware.UserID(c)

	if !h.images.Enabled() {
		httperr.BadRequest(c, "uploads_disabled", "Image storage is not configured.")
		return
	}

	groomer, ok := h.find(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "An image file is required.")
		return
	}
	if fileHeader.Size > maxImageUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Image must be under 8MB.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not read upload.")
		return
	}
	defer file.Close()

	key, err := h.images.SaveGroomerImage(c.Request.Context(), file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "File is not a supported image.")
		return
	}

	oldKey := groomer.ImageKey
	groomer.ImageKey = key

	if err := h.db.Save(groomer).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not save groomer.")
		return
	}

	if oldKey != "" {
		_ = h.images.DeleteGroomerImage(c.Request.Context(), oldKey)
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "groomer_image_uploaded",
		Entity:   "groomer",
		EntityID: &groomer.ID,
	})

	httpresp.OK(c, gin.H{"image_key": key})
}

// --------------------------------------------------

func (h *GroomerHandler) find(c *gin.Context) (*models.Groomer, bool) {
	groomerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Groomer id must be numeric.")
		return nil, false
	}

	var groomer models.Groomer
	if err := h.db.First(&groomer, groomerID).Error; err != nil {
		httperr.NotFound(c, "groomer_not_found", "Groomer not found.")
		return nil, false
	}
	return &groomer, true
}
