package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/shampooches/salon-scheduler/internal/domain/booking"
	"github.com/shampooches/salon-scheduler/internal/httperr"
	"github.com/shampooches/salon-scheduler/internal/httpresp"
	"github.com/shampooches/salon-scheduler/internal/middleware"
	"github.com/shampooches/salon-scheduler/internal/models"
	usecase "github.com/shampooches/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler covers the authenticated booking surface: customers
// book with saved dogs and manage their own appointments, staff manage all
// of them through the status workflow.
type AppointmentHandler struct {
	db      *gorm.DB
	booking *usecase.CreateBooking
	status  *usecase.UpdateStatus
	quote   *usecase.QuotePrice
}

func NewAppointmentHandler(
	db *gorm.DB,
	booking *usecase.CreateBooking,
	status *usecase.UpdateStatus,
	quote *usecase.QuotePrice,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:      db,
		booking: booking,
		status:  status,
		quote:   quote,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CustomerBookingRequest struct {
	DogID *uint `json:"dog_id"`

	// Inline dog details for a booking without a saved profile.
	DogName   string           `json:"dog_name"`
	BreedID   *uint            `json:"breed_id"`
	DogWeight *decimal.Decimal `json:"dog_weight"`
	DogAge    string           `json:"dog_age"`

	ServiceID          uint  `json:"service_id" binding:"required"`
	GroomerID          *uint `json:"groomer_id"`
	PreferredGroomerID *uint `json:"preferred_groomer_id"`

	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req CustomerBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking request.")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "internal_error", "Account lookup failed.")
		return
	}

	ap, err := h.booking.Execute(c.Request.Context(), usecase.CreateBookingInput{
		UserID:             &userID,
		CustomerName:       user.Name,
		CustomerEmail:      user.Email,
		CustomerPhone:      user.Phone,
		DogID:              req.DogID,
		DogName:            req.DogName,
		BreedID:            req.BreedID,
		DogWeight:          req.DogWeight,
		DogAge:             req.DogAge,
		ServiceID:          req.ServiceID,
		GroomerID:          req.GroomerID,
		PreferredGroomerID: req.PreferredGroomerID,
		Date:               req.Date,
		Time:               req.Time,
		Notes:              req.Notes,
	})
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "internal_error", "Could not create booking.")
		}
		return
	}

	httpresp.Created(c, bookingPayload(ap))
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID := middleware.UserID(c)

	var appointments []models.Appointment
	if err := h.db.
		Preload("Service").
		Preload("Groomer").
		Where("user_id = ?", userID).
		Order("date DESC, start_time DESC").
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load appointments.")
		return
	}

	httpresp.List(c, appointments)
}

// CancelMine lets a customer cancel their own pending or confirmed booking.
func (h *AppointmentHandler) CancelMine(c *gin.Context) {
	userID := middleware.UserID(c)

	apID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return
	}

	var count int64
	h.db.Model(&models.Appointment{}).
		Where("id = ? AND user_id = ?", apID, userID).
		Count(&count)
	if count == 0 {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), uint(apID), domain.StatusCancelled, &userID)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "internal_error", "Could not cancel appointment.")
		}
		return
	}

	httpresp.OK(c, bookingPayload(ap))
}

// QuoteForDog prices a service against one of the customer's saved dogs.
func (h *AppointmentHandler) QuoteForDog(c *gin.Context) {
	userID := middleware.UserID(c)

	dogID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Dog id must be numeric.")
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 32)
	if err != nil || serviceID == 0 {
		httperr.BadRequest(c, "invalid_service", "service_id is required.")
		return
	}

	dID := uint(dogID)
	quote, err := h.quote.Execute(c.Request.Context(), usecase.QuoteInput{
		ServiceID: uint(serviceID),
		DogID:     &dID,
		OwnerID:   &userID,
	})
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "internal_error", "Could not compute quote.")
		}
		return
	}

	httpresp.OK(c, quote)
}

// ======================================================
// STAFF
// ======================================================

func (h *AppointmentHandler) ListAll(c *gin.Context) {
	query := h.db.
		Preload("Customer").
		Preload("Service").
		Preload("Groomer")

	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if groomerID := c.Query("groomer_id"); groomerID != "" {
		query = query.Where("groomer_id = ?", groomerID)
	}

	var appointments []models.Appointment
	if err := query.
		Order("date DESC, start_time ASC").
		Limit(500).
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load appointments.")
		return
	}

	httpresp.List(c, appointments)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	actorID := middleware.UserID(c)

	apID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return
	}

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "A status is required.")
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), uint(apID), domain.Status(req.Status), &actorID)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "internal_error", "Could not update status.")
		}
		return
	}

	httpresp.OK(c, bookingPayload(ap))
}
