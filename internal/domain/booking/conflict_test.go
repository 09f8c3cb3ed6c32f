package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shampooches/salon-scheduler/internal/models"
)

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"partial overlap", "09:00", "10:00", "09:30", "10:30", true},
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
		{"back to back is fine", "09:00", "10:00", "10:00", "11:00", false},
		{"back to back reversed", "10:00", "11:00", "09:00", "10:00", false},
		{"disjoint", "09:00", "10:00", "13:00", "14:00", false},
		{"one minute overlap", "09:00", "10:01", "10:00", "11:00", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// symmetry
			assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestHasConflict(t *testing.T) {
	existing := []models.Appointment{
		{StartTime: "09:00", EndTime: "10:00"},
		{StartTime: "11:00", EndTime: "12:00"},
	}

	assert.False(t, HasConflict(existing, "10:00", "11:00"))
	assert.True(t, HasConflict(existing, "09:30", "10:30"))
	assert.True(t, HasConflict(existing, "11:59", "12:30"))
	assert.False(t, HasConflict(nil, "09:00", "10:00"))
}
