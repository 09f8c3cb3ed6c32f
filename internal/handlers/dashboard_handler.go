package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/shampooches/salon-scheduler/internal/domain/booking"
	"github.com/shampooches/salon-scheduler/internal/httperr"
	"github.com/shampooches/salon-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// DashboardHandler aggregates the numbers the admin home screen shows.
type DashboardHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewDashboardHandler(db *gorm.DB, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{db: db, loc: loc}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	now := time.Now().In(h.loc)
	today := now.Format("2006-01-02")
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.loc).Format("2006-01-02")

	var todayCount int64
	if err := h.db.Model(&models.Appointment{}).
		Where("date = ? AND status IN ?", today, domain.BlockingStatuses).
		Count(&todayCount).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load stats.")
		return
	}

	var pendingCount int64
	h.db.Model(&models.Appointment{}).
		Where("status = ?", string(domain.StatusPending)).
		Count(&pendingCount)

	var upcomingCount int64
	h.db.Model(&models.Appointment{}).
		Where("date > ? AND status IN ?", today, domain.BlockingStatuses).
		Count(&upcomingCount)

	var pendingDeletions int64
	h.db.Model(&models.DogDeletionRequest{}).
		Where("status = ?", models.DeletionRequestPending).
		Count(&pendingDeletions)

	// revenue counts confirmed and completed appointments at their frozen
	// booking price
	var revenueRow struct {
		Total decimal.NullDecimal
	}
	h.db.Model(&models.Appointment{}).
		Select("COALESCE(SUM(price_at_booking), 0) AS total").
		Where("date >= ? AND date <= ? AND status IN ?",
			monthStart, today,
			[]string{string(domain.StatusConfirmed), string(domain.StatusCompleted)}).
		Scan(&revenueRow)

	revenue := decimal.Zero
	if revenueRow.Total.Valid {
		revenue = revenueRow.Total.Decimal
	}

	var customerCount int64
	h.db.Model(&models.Customer{}).Count(&customerCount)

	var schedule []models.Appointment
	h.db.
		Preload("Groomer").
		Preload("Service").
		Where("date = ? AND status IN ?", today, domain.BlockingStatuses).
		Order("start_time ASC").
		Find(&schedule)

	c.JSON(200, gin.H{
		"appointments_today":     todayCount,
		"appointments_pending":   pendingCount,
		"appointments_upcoming":  upcomingCount,
		"deletion_requests_open": pendingDeletions,
		"revenue_month":          revenue,
		"customers_total":        customerCount,
		"today_schedule":         schedule,
	})
}
