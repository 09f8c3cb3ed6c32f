package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/shampooches/salon-scheduler/internal/domain/booking"
	"github.com/shampooches/salon-scheduler/internal/httperr"
	"github.com/shampooches/salon-scheduler/internal/models"
)

// fakeRepo is an in-memory domain.Repository for use-case tests.
type fakeRepo struct {
	services map[uint]*models.Service
	breeds   map[uint]*models.Breed
	mappings map[[2]uint]*models.BreedServiceMapping
	groomers map[uint]*models.Groomer
	dogs     map[uint]*models.Dog

	slots        map[string][]models.TimeSlot // key: groomerID + "|" + date
	appointments []models.Appointment
	customers    []*models.Customer
	siteConfig   *models.SiteConfig

	nextID         uint
	lockedGroomers []uint
	threadsEnsured []uint

	mu sync.Mutex // transactions serialize, like FOR UPDATE on the day rows
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services: map[uint]*models.Service{},
		breeds:   map[uint]*models.Breed{},
		mappings: map[[2]uint]*models.BreedServiceMapping{},
		groomers: map[uint]*models.Groomer{},
		dogs:     map[uint]*models.Dog{},
		slots:    map[string][]models.TimeSlot{},
		nextID:   100,
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

func slotKey(groomerID uint, date time.Time) string {
	return fmt.Sprintf("%d|%s", groomerID, date.Format("2006-01-02"))
}

func (f *fakeRepo) addSlot(groomerID uint, date time.Time, start, end string) {
	key := slotKey(groomerID, date)
	f.slots[key] = append(f.slots[key], models.TimeSlot{
		GroomerID: groomerID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		IsActive:  true,
	})
}

func (f *fakeRepo) addBooked(groomerID uint, date time.Time, start, end, status string, customerID uint) {
	gid := groomerID
	f.appointments = append(f.appointments, models.Appointment{
		ID:         f.nextID,
		GroomerID:  &gid,
		CustomerID: customerID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Status:     status,
	})
	f.nextID++
}

// -------- Catalog --------

func (f *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (f *fakeRepo) GetBreed(_ context.Context, id uint) (*models.Breed, error) {
	if b, ok := f.breeds[id]; ok {
		return b, nil
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (f *fakeRepo) GetBreedServiceMapping(_ context.Context, breedID, serviceID uint) (*models.BreedServiceMapping, error) {
	return f.mappings[[2]uint{breedID, serviceID}], nil
}

func (f *fakeRepo) ResolveClonePricingSource(_ context.Context, breed *models.Breed) (*models.Breed, error) {
	if breed.PricingClonedFromID == nil {
		return nil, nil
	}
	return f.breeds[*breed.PricingClonedFromID], nil
}

// -------- Groomers / slots --------

func (f *fakeRepo) GetGroomer(_ context.Context, id uint) (*models.Groomer, error) {
	if g, ok := f.groomers[id]; ok {
		return g, nil
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (f *fakeRepo) ListActiveGroomers(_ context.Context) ([]models.Groomer, error) {
	var out []models.Groomer
	for id := uint(1); id <= 50; id++ {
		if g, ok := f.groomers[id]; ok && g.IsActive {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListTimeSlots(_ context.Context, groomerID uint, date time.Time) ([]models.TimeSlot, error) {
	return f.slots[slotKey(groomerID, date)], nil
}

func (f *fakeRepo) ListBlockingAppointments(_ context.Context, groomerID uint, date time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.GroomerID == nil || *ap.GroomerID != groomerID {
			continue
		}
		if ap.Date.Format("2006-01-02") != date.Format("2006-01-02") {
			continue
		}
		for _, s := range domain.BlockingStatuses {
			if ap.Status == s {
				out = append(out, ap)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) LockGroomerDay(ctx context.Context, groomerID uint, date time.Time) ([]models.Appointment, error) {
	f.lockedGroomers = append(f.lockedGroomers, groomerID)
	return f.ListBlockingAppointments(ctx, groomerID, date)
}

// -------- Customers / dogs --------

func (f *fakeRepo) GetDogForOwner(_ context.Context, dogID, ownerID uint) (*models.Dog, error) {
	if dog, ok := f.dogs[dogID]; ok && dog.OwnerID == ownerID {
		return dog, nil
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (f *fakeRepo) GetOrCreateCustomer(_ context.Context, userID *uint, name, email, phone string) (*models.Customer, error) {
	for _, c := range f.customers {
		if userID != nil && c.UserID != nil && *c.UserID == *userID {
			return c, nil
		}
		if c.Email == email {
			return c, nil
		}
	}

	c := &models.Customer{
		ID:     f.nextID,
		UserID: userID,
		Name:   name,
		Email:  email,
		Phone:  phone,
	}
	f.nextID++
	f.customers = append(f.customers, c)
	return c, nil
}

func (f *fakeRepo) CountCustomerBookingsForDay(_ context.Context, customerID uint, date time.Time) (int64, error) {
	var n int64
	for _, ap := range f.appointments {
		if ap.CustomerID != customerID {
			continue
		}
		if ap.Date.Format("2006-01-02") != date.Format("2006-01-02") {
			continue
		}
		for _, s := range domain.BlockingStatuses {
			if ap.Status == s {
				n++
				break
			}
		}
	}
	return n, nil
}

func (f *fakeRepo) GetActiveSiteConfig(_ context.Context) (*models.SiteConfig, error) {
	return f.siteConfig, nil
}

// -------- Appointments --------

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	ap.ID = f.nextID
	f.nextID++
	f.appointments = append(f.appointments, *ap)
	return nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			ap := f.appointments[i]
			return &ap, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range f.appointments {
		if f.appointments[i].ID == ap.ID {
			f.appointments[i] = *ap
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeNotFound)
}

func (f *fakeRepo) EnsureCustomerThread(_ context.Context, userID uint) error {
	f.threadsEnsured = append(f.threadsEnsured, userID)
	return nil
}

func (f *fakeRepo) Transaction(_ context.Context, fn func(domain.Repository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f)
}

// -------- Fixture helpers --------

func dec(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func decp(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}
