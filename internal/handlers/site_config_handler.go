package handlers

import (
	"github.com/gin-gonic/gin"
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

type SiteConfigHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewSiteConfigHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *SiteConfigHandler {
	return &SiteConfigHandler{db: db, audit: auditDispatcher}
}

type SiteConfigRequest struct {
	BusinessName  string `json:"business_name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	MaxDogsPerDay int    `json:"max_dogs_per_day" binding:"required,min=1"`
}

func (h *SiteConfigHandler) Get(c *gin.Context) {
	cfg, err := h.active()
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not load configuration.")
		return
	}
	httpresp.OK(c, cfg)
}

func (h *SiteConfigHandler) Update(c *gin.Context) {
	actorID := middleware.UserID(c)

	var req SiteConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid configuration data.")
		return
	}

	cfg, err := h.active()
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not load configuration.")
		return
	}

	if req.BusinessName != "" {
		cfg.BusinessName = req.BusinessName
	}
	cfg.Address = req.Address
	cfg.Phone = req.Phone
	cfg.Email = req.Email
	cfg.MaxDogsPerDay = req.MaxDogsPerDay

	if err := h.db.Save(cfg).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not save configuration.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "site_config_updated",
		Entity:   "site_config",
		EntityID: &cfg.ID,
	})

	httpresp.OK(c, cfg)
}

// active loads the single active configuration row, creating it with
// defaults on first use.
func (h *SiteConfigHandler) active() (*models.SiteConfig, error) {
	var cfg models.SiteConfig
	err := h.db.Where("is_active = ?", true).Order("id ASC").First(&cfg).Error

	if err == gorm.ErrRecordNotFound {
		cfg = models.SiteConfig{
			BusinessName:  "Shampooches",
			MaxDogsPerDay: models.DefaultMaxDogsPerDay,
			IsActive:      true,
		}
		err = h.db.Create(&cfg).Error
	}

	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
