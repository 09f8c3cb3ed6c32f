package booking

import (
	"fmt"
	"time"
)

// Appointment times are zero-padded "HH:MM" strings. Minutes since midnight
// is the working representation for interval arithmetic.

func ParseHM(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatHM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// EndTimeHM returns start+duration as an "HH:MM" string. An appointment
// ending exactly at midnight yields "24:00", which still compares correctly
// against "HH:MM" slot times; one running past midnight is an error.
func EndTimeHM(startHM string, durationMinutes int) (string, error) {
	start, err := ParseHM(startHM)
	if err != nil {
		return "", err
	}
	end := start + durationMinutes
	if end > 24*60 {
		return "", fmt.Errorf("end time %s+%dm runs past midnight", startHM, durationMinutes)
	}
	return FormatHM(end), nil
}

// SameDate reports whether two instants fall on the same calendar day in loc.
func SameDate(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
