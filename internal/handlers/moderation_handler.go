package handlers

import (
	"strconv"

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

// ModerationHandler resolves the dog deletion queue. Approving a request
// deletes the dog profile; past appointments are untouched because they
// carry their own dog snapshot.
type ModerationHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewModerationHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *ModerationHandler {
	return &ModerationHandler{db: db, audit: auditDispatcher}
}

// ======================================================
// REQUESTS
// ======================================================

type ResolveDeletionRequest struct {
	Approve    bool   `json:"approve"`
	AdminNotes string `json:"admin_notes"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *ModerationHandler) ListDeletionRequests(c *gin.Context) {
	status := c.DefaultQuery("status", models.DeletionRequestPending)

	var requests []models.DogDeletionRequest
	if err := h.db.
		Preload("Dog").
		Preload("Dog.Breed").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load requests.")
		return
	}

	httpresp.List(c, requests)
}

func (h *ModerationHandler) ResolveDeletionRequest(c *gin.Context) {
	actorID := middleware.UserID(c)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Request id must be numeric.")
		return
	}

	var req ResolveDeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid resolution data.")
		return
	}

	var dr models.DogDeletionRequest
	if err := h.db.First(&dr, requestID).Error; err != nil {
		httperr.NotFound(c, "request_not_found", "Deletion request not found.")
		return
	}

	if dr.Status != models.DeletionRequestPending {
		httperr.Conflict(c, "already_resolved", "This request was already resolved.")
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if req.Approve {
			dr.Status = models.DeletionRequestApproved
			if err := tx.Delete(&models.Dog{}, dr.DogID).Error; err != nil {
				return err
			}
		} else {
			dr.Status = models.DeletionRequestRejected
		}

		dr.AdminNotes = req.AdminNotes
		return tx.Save(&dr).Error
	})

	if err != nil {
		httperr.Internal(c, "internal_error", "Could not resolve request.")
		return
	}

	action := "dog_deletion_rejected"
	if req.Approve {
		action = "dog_deletion_approved"
	}
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   action,
		Entity:   "dog_deletion_request",
		EntityID: &dr.ID,
	})

	httpresp.OK(c, dr)
}
