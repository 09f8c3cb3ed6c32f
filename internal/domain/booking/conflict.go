package booking

import "github.com/shampooches/salon-scheduler/internal/models"

// Overlaps reports whether two [start, end) intervals intersect. Half-open
// semantics: an appointment starting exactly when another ends is fine.
// Zero-padded "HH:MM" strings compare lexicographically.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// HasConflict checks a proposed [start, end) interval against existing
// appointments. Callers pass only blocking (non-cancelled) appointments.
//
// This check is advisory on the read path; the booking transaction repeats it
// under a row lock on the groomer's time slots for the day.
func HasConflict(existing []models.Appointment, start, end string) bool {
	for _, ap := range existing {
		if Overlaps(ap.StartTime, ap.EndTime, start, end) {
			return true
		}
	}
	return false
}
