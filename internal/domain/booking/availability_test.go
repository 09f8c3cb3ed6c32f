package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shampooches/salon-scheduler/internal/models"
)

func slot(start, end string) models.TimeSlot {
	return models.TimeSlot{StartTime: start, EndTime: end, IsActive: true}
}

func booked(start, end string) models.Appointment {
	return models.Appointment{StartTime: start, EndTime: end}
}

func TestFreeWindows(t *testing.T) {
	t.Run("no slots means nothing bookable", func(t *testing.T) {
		out := FreeWindows(nil, nil, 30, -1)
		assert.Empty(t, out)
	})

	t.Run("empty day returns the full slot", func(t *testing.T) {
		out := FreeWindows([]models.TimeSlot{slot("09:00", "12:00")}, nil, 30, -1)
		require.Len(t, out, 1)
		assert.Equal(t, Window{Start: "09:00", End: "12:00"}, out[0])
	})

	t.Run("appointment splits the slot", func(t *testing.T) {
		out := FreeWindows(
			[]models.TimeSlot{slot("09:00", "12:00")},
			[]models.Appointment{booked("10:00", "10:45")},
			30, -1,
		)
		require.Len(t, out, 2)
		assert.Equal(t, Window{Start: "09:00", End: "10:00"}, out[0])
		assert.Equal(t, Window{Start: "10:45", End: "12:00"}, out[1])
	})

	t.Run("gap shorter than the service is dropped", func(t *testing.T) {
		out := FreeWindows(
			[]models.TimeSlot{slot("09:00", "12:00")},
			[]models.Appointment{booked("09:20", "11:50")},
			30, -1,
		)
		assert.Empty(t, out)
	})

	t.Run("back to back appointments leave no gap between them", func(t *testing.T) {
		out := FreeWindows(
			[]models.TimeSlot{slot("09:00", "12:00")},
			[]models.Appointment{booked("09:30", "10:30"), booked("10:30", "11:00")},
			30, -1,
		)
		require.Len(t, out, 2)
		assert.Equal(t, Window{Start: "09:00", End: "09:30"}, out[0])
		assert.Equal(t, Window{Start: "11:00", End: "12:00"}, out[1])
	})

	t.Run("fully booked slot yields nothing", func(t *testing.T) {
		out := FreeWindows(
			[]models.TimeSlot{slot("09:00", "12:00")},
			[]models.Appointment{booked("09:00", "12:00")},
			30, -1,
		)
		assert.Empty(t, out)
	})

	t.Run("inactive slot is skipped", func(t *testing.T) {
		off := slot("09:00", "12:00")
		off.IsActive = false
		out := FreeWindows([]models.TimeSlot{off}, nil, 30, -1)
		assert.Empty(t, out)
	})

	t.Run("today clips windows that already started", func(t *testing.T) {
		// now = 10:00; the morning half is gone
		out := FreeWindows([]models.TimeSlot{slot("09:00", "12:00")}, nil, 30, 600)
		require.Len(t, out, 1)
		assert.Equal(t, "10:01", out[0].Start)
		assert.Equal(t, "12:00", out[0].End)
	})

	t.Run("past day clips everything", func(t *testing.T) {
		out := FreeWindows([]models.TimeSlot{slot("09:00", "12:00")}, nil, 30, 24*60)
		assert.Empty(t, out)
	})

	t.Run("multiple slots stay ordered", func(t *testing.T) {
		out := FreeWindows(
			[]models.TimeSlot{slot("14:00", "17:00"), slot("09:00", "12:00")},
			nil, 30, -1,
		)
		require.Len(t, out, 2)
		assert.Equal(t, "09:00", out[0].Start)
		assert.Equal(t, "14:00", out[1].Start)
	})
}

func TestMergeGroomerWindows(t *testing.T) {
	perGroomer := map[uint][]Window{
		3: {{Start: "09:00", End: "11:00"}},
		1: {{Start: "09:00", End: "12:00"}, {Start: "14:00", End: "16:00"}},
		2: {{Start: "14:00", End: "15:00"}},
	}

	out := MergeGroomerWindows(perGroomer)
	require.Len(t, out, 2)

	assert.Equal(t, "09:00", out[0].Start)
	assert.Equal(t, "12:00", out[0].End) // max end wins
	assert.Equal(t, []uint{1, 3}, out[0].GroomerIDs)

	assert.Equal(t, "14:00", out[1].Start)
	assert.Equal(t, []uint{1, 2}, out[1].GroomerIDs)
}

func TestMergeGroomerWindows_Deterministic(t *testing.T) {
	perGroomer := map[uint][]Window{
		5: {{Start: "09:00", End: "10:00"}},
		2: {{Start: "09:00", End: "10:00"}},
		9: {{Start: "09:00", End: "10:00"}},
	}

	for i := 0; i < 10; i++ {
		out := MergeGroomerWindows(perGroomer)
		require.Len(t, out, 1)
		assert.Equal(t, []uint{2, 5, 9}, out[0].GroomerIDs)
	}
}

func TestNowMinutes(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, loc)

	t.Run("today", func(t *testing.T) {
		date := time.Date(2026, 3, 14, 0, 0, 0, 0, loc)
		assert.Equal(t, 630, NowMinutes(date, now, loc))
	})

	t.Run("future date", func(t *testing.T) {
		date := time.Date(2026, 3, 15, 0, 0, 0, 0, loc)
		assert.Equal(t, -1, NowMinutes(date, now, loc))
	})

	t.Run("past date", func(t *testing.T) {
		date := time.Date(2026, 3, 13, 0, 0, 0, 0, loc)
		assert.Equal(t, 24*60, NowMinutes(date, now, loc))
	})
}
