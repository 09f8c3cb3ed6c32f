package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shampooches/salon-scheduler/internal/httperr"
	"github.com/shampooches/salon-scheduler/internal/infra/cache"
	"github.com/shampooches/salon-scheduler/internal/models"
)

func availabilityFixture(t *testing.T) (*fakeRepo, *GetAvailability, time.Time) {
	t.Helper()

	repo := newFakeRepo()
	repo.services[1] = &models.Service{
		ID:              1,
		Name:            "Full Groom",
		DurationMinutes: 60,
		IsActive:        true,
	}
	repo.groomers[1] = &models.Groomer{ID: 1, Name: "Alex", IsActive: true}
	repo.groomers[2] = &models.Groomer{ID: 2, Name: "Sam", IsActive: true}

	date := time.Now().UTC().AddDate(0, 0, 7).Truncate(24 * time.Hour)

	uc := NewGetAvailability(repo, &cache.AvailabilityCache{}, time.UTC)
	return repo, uc, date
}

func TestGetAvailability_SingleGroomer(t *testing.T) {
	repo, uc, date := availabilityFixture(t)
	repo.addSlot(1, date, "09:00", "12:00")
	repo.addBooked(1, date, "10:00", "11:00", "confirmed", 999)

	windows, err := uc.Execute(context.Background(), AvailabilityInput{
		GroomerID: 1, ServiceID: 1, Date: date,
	})
	require.NoError(t, err)
	require.Len(t, windows, 2)

	assert.Equal(t, "09:00", windows[0].Start)
	assert.Equal(t, "10:00", windows[0].End)
	assert.Equal(t, "11:00", windows[1].Start)
	assert.Equal(t, []uint{1}, windows[0].GroomerIDs)
}

func TestGetAvailability_NoSlotsIsEmptyNotError(t *testing.T) {
	_, uc, date := availabilityFixture(t)

	windows, err := uc.Execute(context.Background(), AvailabilityInput{
		GroomerID: 1, ServiceID: 1, Date: date,
	})
	require.NoError(t, err)
	assert.NotNil(t, windows)
	assert.Empty(t, windows)
}

func TestGetAvailability_InactiveGroomerIsEmpty(t *testing.T) {
	repo, uc, date := availabilityFixture(t)
	repo.addSlot(1, date, "09:00", "12:00")
	repo.groomers[1].IsActive = false

	windows, err := uc.Execute(context.Background(), AvailabilityInput{
		GroomerID: 1, ServiceID: 1, Date: date,
	})
	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestGetAvailability_InactiveService(t *testing.T) {
	repo, uc, date := availabilityFixture(t)
	repo.services[1].IsActive = false

	_, err := uc.Execute(context.Background(), AvailabilityInput{
		GroomerID: 1, ServiceID: 1, Date: date,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInactiveService))
}

func TestGetAvailability_AnyGroomerUnion(t *testing.T) {
	repo, uc, date := availabilityFixture(t)
	repo.addSlot(1, date, "09:00", "11:00")
	repo.addSlot(2, date, "09:00", "12:00")
	repo.addBooked(1, date, "09:00", "10:00", "confirmed", 999)

	windows, err := uc.Execute(context.Background(), AvailabilityInput{
		GroomerID: 0, ServiceID: 1, Date: date,
	})
	require.NoError(t, err)
	require.Len(t, windows, 2)

	// groomer 2's full morning plus groomer 1's remaining hour
	assert.Equal(t, "09:00", windows[0].Start)
	assert.Equal(t, []uint{2}, windows[0].GroomerIDs)

	assert.Equal(t, "10:00", windows[1].Start)
	assert.Equal(t, []uint{1}, windows[1].GroomerIDs)
}
