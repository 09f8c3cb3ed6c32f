package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shampooches/salon-scheduler/internal/audit"
	"github.com/shampooches/salon-scheduler/internal/httperr"
	"github.com/shampooches/salon-scheduler/internal/httpresp"
	"github.com/shampooches/salon-scheduler/internal/middleware"
	"github.com/shampooches/salon-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// DogHandler manages a customer's saved dog profiles. Deleting a profile is
// not immediate: it goes through a deletion request an admin resolves.
type DogHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewDogHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *DogHandler {
	return &DogHandler{db: db, audit: auditDispatcher}
}

// ======================================================
// REQUESTS
// ======================================================

type DogRequest struct {
	Name    string           `json:"name" binding:"required"`
	BreedID *uint            `json:"breed_id"`
	Weight  *decimal.Decimal `json:"weight"`
	Age     string           `json:"age"`
	Notes   string           `json:"notes"`
}

type DeletionRequestBody struct {
	Reason string `json:"reason" binding:"required"`
}

// ======================================================
// CRUD
// ======================================================

func (h *DogHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	var dogs []models.Dog
	if err := h.db.
		Preload("Breed").
		Where("owner_id = ?", userID).
		Order("name ASC").
		Find(&dogs).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load dogs.")
		return
	}

	httpresp.List(c, dogs)
}

func (h *DogHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req DogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid dog data.")
		return
	}

	if req.Weight != nil && req.Weight.IsNegative() {
		httperr.BadRequest(c, "invalid_weight", "Weight cannot be negative.")
		return
	}

	if req.BreedID != nil {
		var count int64
		h.db.Model(&models.Breed{}).Where("id = ? AND is_active = ?", *req.BreedID, true).Count(&count)
		if count == 0 {
			httperr.BadRequest(c, "breed_not_found", "Breed not found.")
			return
		}
	}

	dog := models.Dog{
		OwnerID: userID,
		Name:    strings.TrimSpace(req.Name),
		BreedID: req.BreedID,
		Weight:  req.Weight,
		Age:     req.Age,
		Notes:   req.Notes,
	}

	if err := h.db.Create(&dog).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not save dog.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "dog_created",
		Entity:   "dog",
		EntityID: &dog.ID,
	})

	httpresp.Created(c, dog)
}

func (h *DogHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)

	dog, ok := h.ownedDog(c, userID)
	if !ok {
		return
	}

	var req DogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid dog data.")
		return
	}
	if req.Weight != nil && req.Weight.IsNegative() {
		httperr.BadRequest(c, "invalid_weight", "Weight cannot be negative.")
		return
	}

	dog.Name = strings.TrimSpace(req.Name)
	dog.BreedID = req.BreedID
	dog.Weight = req.Weight
	dog.Age = req.Age
	dog.Notes = req.Notes

	if err := h.db.Save(dog).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not save dog.")
		return
	}

	httpresp.OK(c, dog)
}

// ======================================================
// DELETION REQUESTS
// ======================================================

func (h *DogHandler) RequestDeletion(c *gin.Context) {
	userID := middleware.UserID(c)

	dog, ok := h.ownedDog(c, userID)
	if !ok {
		return
	}

	var req DeletionRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "A reason is required.")
		return
	}

	var pending int64
	h.db.Model(&models.DogDeletionRequest{}).
		Where("dog_id = ? AND status = ?", dog.ID, models.DeletionRequestPending).
		Count(&pending)
	if pending > 0 {
		httperr.Conflict(c, "request_already_pending", "A deletion request is already pending for this dog.")
		return
	}

	dr := models.DogDeletionRequest{
		DogID:         dog.ID,
		RequestedByID: userID,
		Reason:        strings.TrimSpace(req.Reason),
		Status:        models.DeletionRequestPending,
	}

	if err := h.db.Create(&dr).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not create the request.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "dog_deletion_requested",
		Entity:   "dog_deletion_request",
		EntityID: &dr.ID,
	})

	httpresp.Created(c, dr)
}

func (h *DogHandler) ListDeletionRequests(c *gin.Context) {
	userID := middleware.UserID(c)

	var requests []models.DogDeletionRequest
	if err := h.db.
		Preload("Dog").
		Where("requested_by_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load requests.")
		return
	}

	httpresp.List(c, requests)
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (h *DogHandler) ownedDog(c *gin.Context, userID uint) (*models.Dog, bool) {
	dogID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Dog id must be numeric.")
		return nil, false
	}

	var dog models.Dog
	if err := h.db.
		Where("id = ? AND owner_id = ?", dogID, userID).
		First(&dog).Error; err != nil {
		httperr.NotFound(c, "dog_not_found", "Dog not found.")
		return nil, false
	}
	return &dog, true
}
