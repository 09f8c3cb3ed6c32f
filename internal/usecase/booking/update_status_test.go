package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/shampooches/salon-scheduler/internal/domain/booking"
	"github.com/shampooches/salon-scheduler/internal/httperr"
	"github.com/shampooches/salon-scheduler/internal/infra/cache"
	"github.com/shampooches/salon-scheduler/internal/models"
)

func statusFixture(t *testing.T, status string) (*fakeRepo, *UpdateStatus, uint) {
	t.Helper()

	repo := newFakeRepo()
	gid := uint(1)
	ap := &models.Appointment{
		Reference: "ref-1",
		GroomerID: &gid,
		Date:      time.Now().UTC().AddDate(0, 0, 3),
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    status,
	}
	require.NoError(t, repo.CreateAppointment(context.Background(), ap))

	uc := NewUpdateStatus(repo, nil, nil, &cache.AvailabilityCache{})
	return repo, uc, ap.ID
}

func TestUpdateStatus(t *testing.T) {
	actor := uint(1)

	t.Run("pending to confirmed", func(t *testing.T) {
		repo, uc, id := statusFixture(t, "pending")

		ap, err := uc.Execute(context.Background(), id, domain.StatusConfirmed, &actor)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", ap.Status)

		stored, err := repo.GetAppointment(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", stored.Status)
	})

	t.Run("confirmed to completed", func(t *testing.T) {
		_, uc, id := statusFixture(t, "confirmed")

		ap, err := uc.Execute(context.Background(), id, domain.StatusCompleted, &actor)
		require.NoError(t, err)
		assert.Equal(t, "completed", ap.Status)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		repo, uc, id := statusFixture(t, "completed")

		_, err := uc.Execute(context.Background(), id, domain.StatusCancelled, &actor)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))

		stored, err := repo.GetAppointment(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "completed", stored.Status)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		_, uc, id := statusFixture(t, "cancelled")

		_, err := uc.Execute(context.Background(), id, domain.StatusConfirmed, &actor)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
	})

	t.Run("unknown appointment", func(t *testing.T) {
		_, uc, _ := statusFixture(t, "pending")

		_, err := uc.Execute(context.Background(), 424242, domain.StatusConfirmed, &actor)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
	})
}
