package booking

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shampooches/salon-scheduler/internal/audit"
	domain "github.com/shampooches/salon-scheduler/internal/domain/booking"
	"github.com/shampooches/salon-scheduler/internal/httperr"
	"github.com/shampooches/salon-scheduler/internal/infra/cache"
	"github.com/shampooches/salon-scheduler/internal/models"
	"github.com/shampooches/salon-scheduler/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	// Registered customers book through their account; guests supply contact
	// details inline.
	UserID        *uint
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	// Either a saved dog profile (registered customers) or inline dog
	// details. DogID wins when both are present.
	DogID     *uint
	DogName   string
	BreedID   *uint
	DogWeight *decimal.Decimal
	DogAge    string

	ServiceID uint

	// GroomerID nil means "any groomer"; PreferredGroomerID records who the
	// customer asked for, honored when eligible.
	GroomerID          *uint
	PreferredGroomerID *uint

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
	cache  *cache.AvailabilityCache
	loc    *time.Location
}

func NewCreateBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	notifyDispatcher *notify.Dispatcher,
	availCache *cache.AvailabilityCache,
	loc *time.Location,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		audit:  auditDispatcher,
		notify: notifyDispatcher,
		cache:  availCache,
		loc:    loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Input validation
	// --------------------------------------------------
	if err := validateInput(in); err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	if start.Before(time.Now().In(uc.loc)) {
		return nil, httperr.ErrBusiness(httperr.CodeBookingInPast)
	}

	date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, uc.loc)

	// --------------------------------------------------
	// Service
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeInactiveService)
	}

	endHM, err := domain.EndTimeHM(in.Time, service.DurationMinutes)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	// --------------------------------------------------
	// Dog details (saved profile wins over inline fields)
	// --------------------------------------------------
	dogName := strings.TrimSpace(in.DogName)
	breedID := in.BreedID
	dogWeight := in.DogWeight
	dogAge := in.DogAge

	if in.DogID != nil {
		if in.UserID == nil {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
		}
		dog, err := uc.repo.GetDogForOwner(ctx, *in.DogID, *in.UserID)
		if err != nil {
			return nil, err
		}
		dogName = dog.Name
		breedID = dog.BreedID
		if dog.Weight != nil {
			dogWeight = dog.Weight
		}
		dogAge = dog.Age
	}
	if dogName == "" {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	// --------------------------------------------------
	// Pricing (pure; resolved before the write transaction)
	// --------------------------------------------------
	var breed, cloneSource *models.Breed
	var mapping *models.BreedServiceMapping

	if breedID != nil {
		breed, err = uc.repo.GetBreed(ctx, *breedID)
		if err != nil {
			return nil, err
		}
		cloneSource, err = uc.repo.ResolveClonePricingSource(ctx, breed)
		if err != nil {
			return nil, err
		}
		mapping, err = uc.repo.GetBreedServiceMapping(ctx, breed.ID, service.ID)
		if err != nil {
			return nil, err
		}
	}

	price := domain.ComputePrice(service, breed, cloneSource, mapping, dogWeight)

	// --------------------------------------------------
	// Preferred groomer sanity check (re-done inside the tx)
	// --------------------------------------------------
	if in.PreferredGroomerID != nil {
		pg, err := uc.repo.GetGroomer(ctx, *in.PreferredGroomerID)
		if err != nil {
			return nil, err
		}
		if !pg.IsActive {
			return nil, httperr.ErrBusiness(httperr.CodeInactiveGroomer)
		}
	}

	// --------------------------------------------------
	// Atomic check-then-write
	// --------------------------------------------------
	var created *models.Appointment

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		customer, err := uc.resolveCustomer(ctx, tx, in)
		if err != nil {
			return err
		}

		if err := uc.checkDailyLimit(ctx, tx, customer.ID, date); err != nil {
			return err
		}

		assigned, err := uc.assignGroomer(ctx, tx, in, date, in.Time, endHM)
		if err != nil {
			return err
		}

		ap := &models.Appointment{
			Reference:          uuid.NewString(),
			CustomerID:         customer.ID,
			Customer:           *customer,
			UserID:             in.UserID,
			ServiceID:          service.ID,
			GroomerID:          &assigned,
			PreferredGroomerID: in.PreferredGroomerID,
			DogName:            dogName,
			DogBreedID:         breedID,
			DogWeight:          dogWeight,
			DogAge:             dogAge,
			Date:               date,
			StartTime:          in.Time,
			EndTime:            endHM,
			Status:             string(domain.InitialStatus()),
			Notes:              in.Notes,
			PriceAtBooking:     price,
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		if in.UserID != nil {
			if err := tx.EnsureCustomerThread(ctx, *in.UserID); err != nil {
				// thread creation is a convenience, not part of the booking
				log.Printf("ensure customer thread failed for user %d: %v", *in.UserID, err)
			}
		}

		created = ap
		return nil
	})

	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeTimeConflict) {
			uc.audit.Dispatch(audit.Event{
				UserID: in.UserID,
				Action: "booking_conflict",
				Entity: "appointment",
				Metadata: map[string]any{
					"date": in.Date,
					"time": in.Time,
				},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// Post-commit side effects (best effort)
	// --------------------------------------------------
	if created.GroomerID != nil {
		uc.cache.InvalidateDay(ctx, *created.GroomerID, date)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "booking_created",
		Entity:   "appointment",
		EntityID: &created.ID,
	})

	uc.notify.BookingCreated(created)

	return created, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func validateInput(in CreateBookingInput) error {
	if in.ServiceID == 0 || in.Date == "" || in.Time == "" {
		return httperr.ErrBusiness(httperr.CodeInvalidInput)
	}
	if in.UserID == nil {
		if strings.TrimSpace(in.CustomerName) == "" ||
			strings.TrimSpace(in.CustomerEmail) == "" ||
			strings.TrimSpace(in.CustomerPhone) == "" {
			return httperr.ErrBusiness(httperr.CodeInvalidInput)
		}
	}
	if in.DogWeight != nil && in.DogWeight.IsNegative() {
		return httperr.ErrBusiness(httperr.CodeInvalidInput)
	}
	return nil
}

func (uc *CreateBooking) resolveCustomer(
	ctx context.Context,
	tx domain.Repository,
	in CreateBookingInput,
) (*models.Customer, error) {
	return tx.GetOrCreateCustomer(
		ctx,
		in.UserID,
		strings.TrimSpace(in.CustomerName),
		strings.ToLower(strings.TrimSpace(in.CustomerEmail)),
		strings.TrimSpace(in.CustomerPhone),
	)
}

func (uc *CreateBooking) checkDailyLimit(
	ctx context.Context,
	tx domain.Repository,
	customerID uint,
	date time.Time,
) error {

	maxPerDay := models.DefaultMaxDogsPerDay
	if cfg, err := tx.GetActiveSiteConfig(ctx); err != nil {
		return err
	} else if cfg != nil && cfg.MaxDogsPerDay > 0 {
		maxPerDay = cfg.MaxDogsPerDay
	}

	count, err := tx.CountCustomerBookingsForDay(ctx, customerID, date)
	if err != nil {
		return err
	}
	if count >= int64(maxPerDay) {
		return httperr.ErrBusiness(httperr.CodeDailyLimit)
	}
	return nil
}

// assignGroomer resolves which groomer takes the appointment, holding the row
// lock on each candidate's day while checking. For "any groomer" requests the
// preferred groomer is tried first, then the remaining active groomers by
// ascending ID.
func (uc *CreateBooking) assignGroomer(
	ctx context.Context,
	tx domain.Repository,
	in CreateBookingInput,
	date time.Time,
	startHM string,
	endHM string,
) (uint, error) {

	var candidates []uint

	if in.GroomerID != nil {
		groomer, err := tx.GetGroomer(ctx, *in.GroomerID)
		if err != nil {
			return 0, err
		}
		if !groomer.IsActive {
			return 0, httperr.ErrBusiness(httperr.CodeInactiveGroomer)
		}
		candidates = []uint{groomer.ID}
	} else {
		groomers, err := tx.ListActiveGroomers(ctx)
		if err != nil {
			return 0, err
		}

		ids := make([]uint, 0, len(groomers))
		for _, g := range groomers {
			ids = append(ids, g.ID)
		}

		if in.PreferredGroomerID != nil {
			candidates = append(candidates, *in.PreferredGroomerID)
		}
		for _, id := range ids {
			if in.PreferredGroomerID != nil && id == *in.PreferredGroomerID {
				continue
			}
			candidates = append(candidates, id)
		}
	}

	if len(candidates) == 0 {
		return 0, httperr.ErrBusiness(httperr.CodeTimeConflict)
	}

	sawSlotWindow := false

	for _, groomerID := range candidates {
		slots, err := tx.ListTimeSlots(ctx, groomerID, date)
		if err != nil {
			return 0, err
		}
		if !withinSlotWindow(slots, startHM, endHM) {
			continue
		}
		sawSlotWindow = true

		blocking, err := tx.LockGroomerDay(ctx, groomerID, date)
		if err != nil {
			return 0, err
		}
		if domain.HasConflict(blocking, startHM, endHM) {
			continue
		}

		return groomerID, nil
	}

	if !sawSlotWindow {
		return 0, httperr.ErrBusiness(httperr.CodeOutsideSlots)
	}
	return 0, httperr.ErrBusiness(httperr.CodeTimeConflict)
}

func withinSlotWindow(slots []models.TimeSlot, startHM, endHM string) bool {
	for _, slot := range slots {
		if !slot.IsActive {
			continue
		}
		if slot.StartTime <= startHM && slot.EndTime >= endHM {
			return true
		}
	}
	return false
}
