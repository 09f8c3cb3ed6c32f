package handlers

import (
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shampooches/salon-scheduler/internal/audit"
	domain "github.com/shampooches/salon-scheduler/internal/domain/booking"
	"github.com/shampooches/salon-scheduler/internal/httperr"
	"github.com/shampooches/salon-scheduler/internal/httpresp"
	"github.com/shampooches/salon-scheduler/internal/infra/cache"
	"github.com/shampooches/salon-scheduler/internal/middleware"
	"github.com/shampooches/salon-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// TimeSlotHandler is the admin surface for groomer schedules. A day's slots
// are replaced as a set: the whole day is validated, cleared and re-created
// in one transaction so readers never see a half-updated schedule.
type TimeSlotHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
	loc   *time.Location
}

func NewTimeSlotHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	availCache *cache.AvailabilityCache,
	loc *time.Location,
) *TimeSlotHandler {
	return &TimeSlotHandler{
		db:    db,
		audit: auditDispatcher,
		cache: availCache,
		loc:   loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SlotInput struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type ReplaceDayRequest struct {
	GroomerID  uint        `json:"groomer_id"`
	ApplyToAll bool        `json:"apply_to_all"`
	Date       string      `json:"date" binding:"required"`
	Slots      []SlotInput `json:"slots"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *TimeSlotHandler) ListDay(c *gin.Context) {
	groomerID, err := strconv.ParseUint(c.Query("groomer_id"), 10, 32)
	if err != nil || groomerID == 0 {
		httperr.BadRequest(c, "invalid_groomer", "groomer_id is required.")
		return
	}

	date, err := parseDate(h.loc, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	var slots []models.TimeSlot
	if err := h.db.
		Where("groomer_id = ? AND date = ?", groomerID, date.Format("2006-01-02")).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load time slots.")
		return
	}

	httpresp.List(c, slots)
}

// ReplaceDay swaps out a groomer's schedule for one date. Times already
// booked must stay covered by the new slots, otherwise the update is
// rejected.
func (h *TimeSlotHandler) ReplaceDay(c *gin.Context) {
	actorID := middleware.UserID(c)

	var req ReplaceDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid schedule data.")
		return
	}

	date, err := parseDate(h.loc, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	slots, err := normalizeSlots(req.Slots)
	if err != nil {
		httperr.BadRequest(c, httperr.BusinessCode(err), "Slots are invalid or overlap.")
		return
	}

	var groomerIDs []uint
	if req.ApplyToAll {
		if err := h.db.Model(&models.Groomer{}).
			Where("is_active = ?", true).
			Order("id ASC").
			Pluck("id", &groomerIDs).Error; err != nil {
			httperr.Internal(c, "internal_error", "Could not load groomers.")
			return
		}
	} else {
		if req.GroomerID == 0 {
			httperr.BadRequest(c, "invalid_groomer", "groomer_id or apply_to_all is required.")
			return
		}
		var groomer models.Groomer
		if err := h.db.First(&groomer, req.GroomerID).Error; err != nil {
			httperr.NotFound(c, "groomer_not_found", "Groomer not found.")
			return
		}
		groomerIDs = []uint{req.GroomerID}
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		for _, gid := range groomerIDs {
			if err := replaceGroomerDay(tx, gid, date, slots); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeTimeConflict) {
			httperr.Conflict(c, "booked_time_uncovered",
				"New slots do not cover an existing booking. Cancel or move it first.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not update schedule.")
		return
	}

	for _, gid := range groomerIDs {
		h.cache.InvalidateDay(c.Request.Context(), gid, date)
	}

	h.audit.Dispatch(audit.Event{
		UserID: &actorID,
		Action: "schedule_replaced",
		Entity: "time_slot",
		Metadata: map[string]any{
			"groomers": groomerIDs,
			"date":     req.Date,
			"slots":    len(slots),
		},
	})

	httpresp.OK(c, gin.H{"groomers": groomerIDs, "date": req.Date, "slots": len(slots)})
}

// replaceGroomerDay clears and re-creates one groomer's slots for a date.
// Fails when an existing blocking appointment would fall outside the new
// slots.
func replaceGroomerDay(tx *gorm.DB, groomerID uint, date time.Time, slots []normalizedSlot) error {
	dateStr := date.Format("2006-01-02")

	var booked []models.Appointment
	if err := tx.
		Where("groomer_id = ? AND date = ? AND status IN ?",
			groomerID, dateStr, domain.BlockingStatuses).
		Find(&booked).Error; err != nil {
		return err
	}

	for _, ap := range booked {
		if !coveredBySlots(slots, ap.StartTime, ap.EndTime) {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}
	}

	if err := tx.
		Where("groomer_id = ? AND date = ?", groomerID, dateStr).
		Delete(&models.TimeSlot{}).Error; err != nil {
		return err
	}

	for i := range slots {
		slot := models.TimeSlot{
			GroomerID: groomerID,
			Date:      date,
			StartTime: slots[i].StartTime,
			EndTime:   slots[i].EndTime,
			IsActive:  true,
		}
		if err := tx.Create(&slot).Error; err != nil {
			return err
		}
	}

	return nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

type normalizedSlot struct {
	StartTime string
	EndTime   string
}

func normalizeSlots(in []SlotInput) ([]normalizedSlot, error) {
	out := make([]normalizedSlot, 0, len(in))

	for _, s := range in {
		startMin, err := domain.ParseHM(s.StartTime)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
		}
		endMin, err := domain.ParseHM(s.EndTime)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
		}
		if endMin <= startMin {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
		}
		out = append(out, normalizedSlot{
			StartTime: domain.FormatHM(startMin),
			EndTime:   domain.FormatHM(endMin),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })

	for i := 1; i < len(out); i++ {
		if out[i].StartTime < out[i-1].EndTime {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
		}
	}
	return out, nil
}

func coveredBySlots(slots []normalizedSlot, startHM, endHM string) bool {
	for _, s := range slots {
		if s.StartTime <= startHM && s.EndTime >= endHM {
			return true
		}
	}
	return false
}
