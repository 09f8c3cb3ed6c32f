package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/shampooches/salon-scheduler/internal/domain/booking"
	"github.com/shampooches/salon-scheduler/internal/httperr"
	"github.com/shampooches/salon-scheduler/internal/models"
)

// maxCloneHops bounds pricing_cloned_from resolution so a cyclic chain in the
// data cannot loop forever.
const maxCloneHops = 8

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) GetBreed(
	ctx context.Context,
	id uint,
) (*models.Breed, error) {

	var breed models.Breed
	if err := r.db.WithContext(ctx).First(&breed, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}
	return &breed, nil
}

func (r *BookingGormRepository) GetBreedServiceMapping(
	ctx context.Context,
	breedID uint,
	serviceID uint,
) (*models.BreedServiceMapping, error) {

	var mapping models.BreedServiceMapping
	err := r.db.WithContext(ctx).
		Where("breed_id = ? AND service_id = ?", breedID, serviceID).
		First(&mapping).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mapping, nil
}

func (r *BookingGormRepository) ResolveClonePricingSource(
	ctx context.Context,
	breed *models.Breed,
) (*models.Breed, error) {

	current := breed
	for hop := 0; hop < maxCloneHops; hop++ {
		if current.PricingClonedFromID == nil {
			if current == breed {
				return nil, nil
			}
			return current, nil
		}

		// A breed with its own complete config terminates the chain.
		if current != breed && current.HasOwnWeightPricing() {
			return current, nil
		}

		var next models.Breed
		if err := r.db.WithContext(ctx).
			First(&next, *current.PricingClonedFromID).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				if current == breed {
					return nil, nil
				}
				return current, nil
			}
			return nil, err
		}
		current = &next
	}

	// Hop limit hit: the chain is cyclic or absurdly deep. Use the last
	// resolved breed rather than failing the request.
	return current, nil
}

// --------------------------------------------------
// Groomers / slots
// --------------------------------------------------

func (r *BookingGormRepository) GetGroomer(
	ctx context.Context,
	id uint,
) (*models.Groomer, error) {

	var groomer models.Groomer
	if err := r.db.WithContext(ctx).First(&groomer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}
	return &groomer, nil
}

func (r *BookingGormRepository) ListActiveGroomers(
	ctx context.Context,
) ([]models.Groomer, error) {

	var groomers []models.Groomer
	if err := r.db.WithContext(ctx).
		Where("is_active = true").
		Order("display_order ASC, id ASC").
		Find(&groomers).Error; err != nil {
		return nil, err
	}
	return groomers, nil
}

func (r *BookingGormRepository) ListTimeSlots(
	ctx context.Context,
	groomerID uint,
	date time.Time,
) ([]models.TimeSlot, error) {

	var slots []models.TimeSlot
	if err := r.db.WithContext(ctx).
		Where("groomer_id = ? AND date = ? AND is_active = true", groomerID, date.Format("2006-01-02")).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *BookingGormRepository) ListBlockingAppointments(
	ctx context.Context,
	groomerID uint,
	date time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "customer_id", "start_time", "end_time", "status").
		Where(
			"groomer_id = ? AND date = ? AND status IN ?",
			groomerID, date.Format("2006-01-02"), domain.BlockingStatuses,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *BookingGormRepository) LockGroomerDay(
	ctx context.Context,
	groomerID uint,
	date time.Time,
) ([]models.Appointment, error) {

	// Locking the day's time-slot rows serializes concurrent bookings for
	// the same groomer/date: an insert-insert race on appointments alone
	// would slip past a lock on not-yet-existing rows.
	var slots []models.TimeSlot
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("groomer_id = ? AND date = ?", groomerID, date.Format("2006-01-02")).
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return r.ListBlockingAppointments(ctx, groomerID, date)
}

// --------------------------------------------------
// Customers / dogs
// --------------------------------------------------

func (r *BookingGormRepository) GetDogForOwner(
	ctx context.Context,
	dogID uint,
	ownerID uint,
) (*models.Dog, error) {

	var dog models.Dog
	if err := r.db.WithContext(ctx).
		Preload("Breed").
		Where("id = ? AND owner_id = ?", dogID, ownerID).
		First(&dog).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}
	return &dog, nil
}

func (r *BookingGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	userID *uint,
	name string,
	email string,
	phone string,
) (*models.Customer, error) {

	var customer models.Customer

	query := r.db.WithContext(ctx)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	} else {
		query = query.Where("email = ?", email)
	}

	err := query.First(&customer).Error
	if err == nil {
		if customer.Name != name || customer.Phone != phone {
			customer.Name = name
			customer.Phone = phone
			if err := r.db.WithContext(ctx).Save(&customer).Error; err != nil {
				return nil, err
			}
		}
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer = models.Customer{
		UserID: userID,
		Name:   name,
		Email:  email,
		Phone:  phone,
	}
	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		// lost a create race on the unique email; the row exists now
		if isUniqueViolation(err) {
			var existing models.Customer
			if ferr := r.db.WithContext(ctx).
				Where("email = ?", email).
				First(&existing).Error; ferr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return &customer, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *BookingGormRepository) CountCustomerBookingsForDay(
	ctx context.Context,
	customerID uint,
	date time.Time,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"customer_id = ? AND date = ? AND status IN ?",
			customerID, date.Format("2006-01-02"), domain.BlockingStatuses,
		).
		Count(&count).Error
	return count, err
}

func (r *BookingGormRepository) GetActiveSiteConfig(
	ctx context.Context,
) (*models.SiteConfig, error) {

	var cfg models.SiteConfig
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		First(&cfg).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Preload("Groomer").
		First(&ap, id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *BookingGormRepository) EnsureCustomerThread(
	ctx context.Context,
	userID uint,
) error {

	var thread models.MessageThread
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND is_active = true", userID).
		First(&thread).Error

	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	thread = models.MessageThread{
		CustomerID: userID,
		Subject:    "Conversation with Shampooches",
		IsActive:   true,
	}
	return r.db.WithContext(ctx).Create(&thread).Error
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *BookingGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
