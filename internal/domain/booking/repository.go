package booking

import (
	"context"
	"time"

	"github.com/shampooches/salon-scheduler/internal/models"
)

// Repository is the persistence contract for the booking domain. The GORM
// implementation lives in internal/infra/repository.
type Repository interface {
	// -------- Catalog --------
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetBreed(ctx context.Context, id uint) (*models.Breed, error)

	// GetBreedServiceMapping returns (nil, nil) when no mapping exists.
	GetBreedServiceMapping(ctx context.Context, breedID, serviceID uint) (*models.BreedServiceMapping, error)

	// ResolveClonePricingSource walks the pricing_cloned_from chain until it
	// finds a breed with its own pricing, with a hop limit so a cyclic chain
	// cannot hang the request. Returns (nil, nil) when the breed clones
	// nothing.
	ResolveClonePricingSource(ctx context.Context, breed *models.Breed) (*models.Breed, error)

	// -------- Groomers / slots --------
	GetGroomer(ctx context.Context, id uint) (*models.Groomer, error)
	ListActiveGroomers(ctx context.Context) ([]models.Groomer, error)
	ListTimeSlots(ctx context.Context, groomerID uint, date time.Time) ([]models.TimeSlot, error)
	ListBlockingAppointments(ctx context.Context, groomerID uint, date time.Time) ([]models.Appointment, error)

	// LockGroomerDay takes row locks on the groomer's time slots for the date
	// and returns the blocking appointments read under that lock. Two
	// concurrent bookings for the same groomer and day serialize here. Only
	// valid inside Transaction.
	LockGroomerDay(ctx context.Context, groomerID uint, date time.Time) ([]models.Appointment, error)

	// -------- Customers / dogs --------
	GetDogForOwner(ctx context.Context, dogID, ownerID uint) (*models.Dog, error)
	GetOrCreateCustomer(ctx context.Context, userID *uint, name, email, phone string) (*models.Customer, error)
	CountCustomerBookingsForDay(ctx context.Context, customerID uint, date time.Time) (int64, error)
	GetActiveSiteConfig(ctx context.Context) (*models.SiteConfig, error)

	// -------- Appointments --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// EnsureCustomerThread creates the customer's message thread on first
	// booking if they have none.
	EnsureCustomerThread(ctx context.Context, userID uint) error

	// Transaction runs fn against a repository bound to one database
	// transaction; any error rolls everything back.
	Transaction(ctx context.Context, fn func(Repository) error) error
}
