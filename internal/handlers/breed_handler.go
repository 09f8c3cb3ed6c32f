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

type BreedHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBreedHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *BreedHandler {
	return &BreedHandler{db: db, audit: auditDispatcher}
}

// ======================================================
// REQUESTS
// ======================================================

type BreedRequest struct {
	Name         string `json:"name" binding:"required"`
	SizeCategory string `json:"size_category"`

	BasePrice         *decimal.Decimal `json:"base_price"`
	StartWeight       *decimal.Decimal `json:"start_weight"`
	WeightRangeAmount *decimal.Decimal `json:"weight_range_amount"`
	WeightPriceAmount *decimal.Decimal `json:"weight_price_amount"`

	PricingClonedFromID *uint  `json:"pricing_cloned_from_id"`
	CloneNote           string `json:"clone_note"`

	IsActive *bool `json:"is_active"`
}

type MappingRequest struct {
	ServiceID   uint            `json:"service_id" binding:"required"`
	IsAvailable bool            `json:"is_available"`
	BasePrice   decimal.Decimal `json:"base_price"`
}

// ======================================================
// CRUD
// ======================================================

func (h *BreedHandler) List(c *gin.Context) {
	var breeds []models.Breed
	if err := h.db.Order("name ASC").Find(&breeds).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load breeds.")
		return
	}
	httpresp.List(c, breeds)
}

func (h *BreedHandler) Create(c *gin.Context) {
	actorID := middleware.UserID(c)

	var req BreedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid breed data.")
		return
	}

	breed := models.Breed{IsActive: true}
	if err := h.applyRequest(&breed, &req); err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	if err := h.db.Create(&breed).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not save breed.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "breed_created",
		Entity:   "breed",
		EntityID: &breed.ID,
	})

	httpresp.Created(c, breed)
}

func (h *BreedHandler) Update(c *gin.Context) {
	actorID := middleware.UserID(c)

	breedID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Breed id must be numeric.")
		return
	}

	var breed models.Breed
	if err := h.db.First(&breed, breedID).Error; err != nil {
		httperr.NotFound(c, "breed_not_found", "Breed not found.")
		return
	}

	var req BreedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid breed data.")
		return
	}

	if err := h.applyRequest(&breed, &req); err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	if err := h.db.Save(&breed).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not save breed.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "breed_updated",
		Entity:   "breed",
		EntityID: &breed.ID,
	})

	httpresp.OK(c, breed)
}

// ======================================================
// SERVICE MAPPINGS
// ======================================================

func (h *BreedHandler) ListMappings(c *gin.Context) {
	breedID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Breed id must be numeric.")
		return
	}

	var mappings []models.BreedServiceMapping
	if err := h.db.
		Preload("Service").
		Where("breed_id = ?", breedID).
		Find(&mappings).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load mappings.")
		return
	}

	httpresp.List(c, mappings)
}

// UpsertMapping sets or replaces a breed's price override for one service.
func (h *BreedHandler) UpsertMapping(c *gin.Context) {
	actorID := middleware.UserID(c)

	breedID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Breed id must be numeric.")
		return
	}

	var req MappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid mapping data.")
		return
	}
	if req.BasePrice.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "Price cannot be negative.")
		return
	}

	var breed models.Breed
	if err := h.db.First(&breed, breedID).Error; err != nil {
		httperr.NotFound(c, "breed_not_found", "Breed not found.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, req.ServiceID).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var mapping models.BreedServiceMapping
	err = h.db.
		Where("breed_id = ? AND service_id = ?", breed.ID, service.ID).
		First(&mapping).Error

	switch {
	case err == gorm.ErrRecordNotFound:
		mapping = models.BreedServiceMapping{
			BreedID:     breed.ID,
			ServiceID:   service.ID,
			IsAvailable: req.IsAvailable,
			BasePrice:   req.BasePrice,
		}
		err = h.db.Create(&mapping).Error
	case err == nil:
		mapping.IsAvailable = req.IsAvailable
		mapping.BasePrice = req.BasePrice
		err = h.db.Save(&mapping).Error
	}

	if err != nil {
		httperr.Internal(c, "internal_error", "Could not save mapping.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "breed_mapping_saved",
		Entity:   "breed_service_mapping",
		EntityID: &mapping.ID,
	})

	httpresp.OK(c, mapping)
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (h *BreedHandler) applyRequest(breed *models.Breed, req *BreedRequest) error {
	if negativePrice(req.BasePrice) || negativePrice(req.StartWeight) ||
		negativePrice(req.WeightRangeAmount) || negativePrice(req.WeightPriceAmount) {
		return httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	// Tier parameters are all-or-nothing; a partial set cannot price anything.
	tierFields := 0
	for _, v := range []*decimal.Decimal{req.StartWeight, req.WeightRangeAmount, req.WeightPriceAmount} {
		if v != nil {
			tierFields++
		}
	}
	if tierFields != 0 && tierFields != 3 {
		return httperr.ErrBusiness(httperr.CodeInvalidInput)
	}
	if req.WeightRangeAmount != nil && req.WeightRangeAmount.IsZero() {
		return httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	if req.PricingClonedFromID != nil {
		if err := h.validateCloneSource(breed.ID, *req.PricingClonedFromID); err != nil {
			return err
		}
	}

	breed.Name = strings.TrimSpace(req.Name)
	breed.SizeCategory = req.SizeCategory
	breed.BasePrice = req.BasePrice
	breed.StartWeight = req.StartWeight
	breed.WeightRangeAmount = req.WeightRangeAmount
	breed.WeightPriceAmount = req.WeightPriceAmount
	breed.PricingClonedFromID = req.PricingClonedFromID
	breed.CloneNote = req.CloneNote
	if req.IsActive != nil {
		breed.IsActive = *req.IsActive
	}
	return nil
}

// validateCloneSource rejects a clone link that points at the breed itself
// or would close a cycle through existing links.
func (h *BreedHandler) validateCloneSource(breedID uint, sourceID uint) error {
	if sourceID == breedID {
		return httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	seen := map[uint]bool{breedID: true}
	current := sourceID

	for current != 0 {
		if seen[current] {
			return httperr.ErrBusiness(httperr.CodeInvalidInput)
		}
		seen[current] = true

		var src models.Breed
		if err := h.db.First(&src, current).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return httperr.ErrBusiness(httperr.CodeNotFound)
			}
			return err
		}

		if src.PricingClonedFromID == nil {
			return nil
		}
		current = *src.PricingClonedFromID
	}
	return nil
}

func negativePrice(v *decimal.Decimal) bool {
	return v != nil && v.IsNegative()
}
