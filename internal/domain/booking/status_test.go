package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shampooches/salon-scheduler/internal/httperr"
	"github.com/shampooches/salon-scheduler/internal/models"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to))
		})
	}
}

func TestTransition(t *testing.T) {
	t.Run("applies the change and reports the previous status", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPending)}

		prev, err := Transition(ap, StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, prev)
		assert.Equal(t, string(StatusConfirmed), ap.Status)
	})

	t.Run("rejects a forbidden transition without mutating", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusCompleted)}

		_, err := Transition(ap, StatusCancelled)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
		assert.Equal(t, string(StatusCompleted), ap.Status)
	})

	t.Run("rejects an unknown target status", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPending)}

		_, err := Transition(ap, Status("archived"))
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))
	})
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, Status("archived").IsTerminal())
}

func TestBlockingStatuses(t *testing.T) {
	// completed appointments keep occupying the slot; cancelled ones free it
	assert.Contains(t, BlockingStatuses, "pending")
	assert.Contains(t, BlockingStatuses, "confirmed")
	assert.Contains(t, BlockingStatuses, "completed")
	assert.NotContains(t, BlockingStatuses, "cancelled")
}
