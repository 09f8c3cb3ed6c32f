package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shampooches/salon-scheduler/internal/httperr"
	"github.com/shampooches/salon-scheduler/internal/httpresp"
	"github.com/shampooches/salon-scheduler/internal/models"
	usecase "github.com/shampooches/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the unauthenticated booking surface: catalog listings,
// price quotes, availability lookups and guest bookings.
type PublicHandler struct {
	db           *gorm.DB
	quote        *usecase.QuotePrice
	availability *usecase.GetAvailability
	booking      *usecase.CreateBooking
	loc          *time.Location
}

func NewPublicHandler(
	db *gorm.DB,
	quote *usecase.QuotePrice,
	availability *usecase.GetAvailability,
	booking *usecase.CreateBooking,
	loc *time.Location,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		quote:        quote,
		availability: availability,
		booking:      booking,
		loc:          loc,
	}
}

// ======================================================
// CATALOG
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load services.")
		return
	}
	httpresp.List(c, services)
}

func (h *PublicHandler) ListGroomers(c *gin.Context) {
	var groomers []models.Groomer
	if err := h.db.
		Where("is_active = ?", true).
		Order("display_order ASC, name ASC").
		Find(&groomers).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load groomers.")
		return
	}
	httpresp.List(c, groomers)
}

func (h *PublicHandler) ListBreeds(c *gin.Context) {
	var breeds []models.Breed
	if err := h.db.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&breeds).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load breeds.")
		return
	}
	httpresp.List(c, breeds)
}

// ======================================================
// QUOTE
// ======================================================

type QuoteRequest struct {
	ServiceID uint             `json:"service_id" binding:"required"`
	BreedID   *uint            `json:"breed_id"`
	Weight    *decimal.Decimal `json:"weight"`
}

func (h *PublicHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid quote request.")
		return
	}

	quote, err := h.quote.Execute(c.Request.Context(), usecase.QuoteInput{
		ServiceID: req.ServiceID,
		BreedID:   req.BreedID,
		Weight:    req.Weight,
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
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	date, err := parseDate(h.loc, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 32)
	if err != nil || serviceID == 0 {
		httperr.BadRequest(c, "invalid_service", "service_id is required.")
		return
	}

	// groomer_id omitted or 0 means "any groomer"
	var groomerID uint64
	if v := c.Query("groomer_id"); v != "" {
		groomerID, err = strconv.ParseUint(v, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_groomer", "groomer_id must be numeric.")
			return
		}
	}

	windows, err := h.availability.Execute(c.Request.Context(), usecase.AvailabilityInput{
		GroomerID: uint(groomerID),
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "internal_error", "Could not compute availability.")
		}
		return
	}

	httpresp.OK(c, gin.H{
		"date":    dateStr,
		"windows": windows,
	})
}

// ======================================================
// GUEST BOOKING
// ======================================================

type GuestBookingRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerPhone string `json:"customer_phone" binding:"required"`

	DogName   string           `json:"dog_name" binding:"required"`
	BreedID   *uint            `json:"breed_id"`
	DogWeight *decimal.Decimal `json:"dog_weight"`
	DogAge    string           `json:"dog_age"`

	ServiceID uint  `json:"service_id" binding:"required"`
	GroomerID *uint `json:"groomer_id"`

	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`
}

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req GuestBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking request.")
		return
	}

	ap, err := h.booking.Execute(c.Request.Context(), usecase.CreateBookingInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		DogName:       req.DogName,
		BreedID:       req.BreedID,
		DogWeight:     req.DogWeight,
		DogAge:        req.DogAge,
		ServiceID:     req.ServiceID,
		GroomerID:     req.GroomerID,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	})
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "internal_error", "Could not create booking.")
		}
		return
	}

	httpresp.Created(c, bookingPayload(ap))
}

// LookupBooking lets a guest retrieve their booking by reference and email.
func (h *PublicHandler) LookupBooking(c *gin.Context) {
	reference := c.Param("reference")
	email := c.Query("email")
	if reference == "" || email == "" {
		httperr.BadRequest(c, "invalid_request", "Reference and email are required.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Customer").
		Preload("Service").
		Preload("Groomer").
		Where("reference = ?", reference).
		First(&ap).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	if ap.Customer.Email != email {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	httpresp.OK(c, bookingPayload(&ap))
}

// --------------------------------------------------
// Payload
// --------------------------------------------------

func bookingPayload(ap *models.Appointment) gin.H {
	return gin.H{
		"id":         ap.ID,
		"reference":  ap.Reference,
		"date":       ap.Date.Format("2006-01-02"),
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
		"status":     ap.Status,
		"dog_name":   ap.DogName,
		"service_id": ap.ServiceID,
		"groomer_id": ap.GroomerID,
		"price":      ap.PriceAtBooking,
		"notes":      ap.Notes,
	}
}
