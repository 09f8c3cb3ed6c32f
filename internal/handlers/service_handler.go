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

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: auditDispatcher}
}

// ======================================================
// REQUESTS
// ======================================================

type ServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`

	Price       decimal.Decimal `json:"price"`
	PricingType string          `json:"pricing_type"`

	DurationMinutes int `json:"duration_minutes" binding:"required,min=5"`

	ExemptFromSurcharge bool  `json:"exempt_from_surcharge"`
	IsActive            *bool `json:"is_active"`
}

// ======================================================
// CRUD
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load services.")
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	actorID := middleware.UserID(c)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service data.")
		return
	}

	service := models.Service{IsActive: true, PricingType: models.PricingTypeBaseRequired}
	if err := applyServiceRequest(&service, &req); err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not save service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &service.ID,
	})

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	actorID := middleware.UserID(c)

	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Service id must be numeric.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, serviceID).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service data.")
		return
	}

	if err := applyServiceRequest(&service, &req); err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not save service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &service.ID,
	})

	httpresp.OK(c, service)
}

// Deactivate retires a service from new bookings. Past appointments keep
// their frozen price and service reference, so services are never deleted.
func (h *ServiceHandler) Deactivate(c *gin.Context) {
	actorID := middleware.UserID(c)

	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Service id must be numeric.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, serviceID).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	service.IsActive = false
	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not deactivate service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "service_deactivated",
		Entity:   "service",
		EntityID: &service.ID,
	})

	httpresp.OK(c, service)
}

// --------------------------------------------------

func applyServiceRequest(service *models.Service, req *ServiceRequest) error {
	if req.Price.IsNegative() {
		return httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	pricingType := req.PricingType
	if pricingType == "" {
		pricingType = service.PricingType
	}
	if pricingType != models.PricingTypeBaseRequired && pricingType != models.PricingTypeStandalone {
		return httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	service.Name = strings.TrimSpace(req.Name)
	service.Description = req.Description
	service.Price = req.Price
	service.PricingType = pricingType
	service.DurationMinutes = req.DurationMinutes
	service.ExemptFromSurcharge = req.ExemptFromSurcharge
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	return nil
}
