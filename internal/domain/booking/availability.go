package booking

import (
	"sort"
	"time"

	"github.com/shampooches/salon-scheduler/internal/models"
)

// ======================================================
// AVAILABILITY
// ======================================================

// Window is a bookable interval for one groomer.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// GroomerWindow tags a candidate start time with the groomers able to serve
// it, for "any groomer" queries.
type GroomerWindow struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	GroomerIDs []uint `json:"groomer_ids"`
}

type interval struct {
	start int
	end   int
}

// FreeWindows computes a groomer's bookable windows for one day: the active
// time-slot windows minus the union of blocking appointment intervals, kept
// only when at least durationMinutes long. When the queried date is today,
// nowMinutes clips away windows that already started (pass a negative value
// for future dates). Result is ordered by start time ascending.
func FreeWindows(
	slots []models.TimeSlot,
	appointments []models.Appointment,
	durationMinutes int,
	nowMinutes int,
) []Window {

	busy := make([]interval, 0, len(appointments))
	for _, ap := range appointments {
		s, err1 := ParseHM(ap.StartTime)
		e, err2 := ParseHM(ap.EndTime)
		if err1 != nil || err2 != nil || e <= s {
			continue
		}
		busy = append(busy, interval{start: s, end: e})
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].start < busy[j].start })

	var out []Window
	for _, slot := range slots {
		if !slot.IsActive {
			continue
		}

		s, err1 := ParseHM(slot.StartTime)
		e, err2 := ParseHM(slot.EndTime)
		if err1 != nil || err2 != nil || e <= s {
			continue
		}

		for _, free := range subtract(interval{start: s, end: e}, busy) {
			if free.start <= nowMinutes {
				free.start = nowMinutes + 1
			}
			if free.end-free.start >= durationMinutes {
				out = append(out, Window{
					Start: FormatHM(free.start),
					End:   FormatHM(free.end),
				})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// subtract removes the busy intervals from window, returning the remaining
// free sub-intervals in ascending order. busy must be sorted by start.
func subtract(window interval, busy []interval) []interval {
	free := []interval{}
	cur := window.start

	for _, b := range busy {
		if b.end <= cur || b.start >= window.end {
			continue
		}
		if b.start > cur {
			free = append(free, interval{start: cur, end: b.start})
		}
		if b.end > cur {
			cur = b.end
		}
	}

	if cur < window.end {
		free = append(free, interval{start: cur, end: window.end})
	}
	return free
}

// MergeGroomerWindows unions per-groomer windows into de-duplicated candidate
// start times tagged with every groomer able to serve them. Groomer IDs are
// ascending so the later "any groomer" assignment is deterministic.
func MergeGroomerWindows(perGroomer map[uint][]Window) []GroomerWindow {
	byStart := make(map[string]*GroomerWindow)

	for groomerID, windows := range perGroomer {
		for _, w := range windows {
			gw, ok := byStart[w.Start]
			if !ok {
				gw = &GroomerWindow{Start: w.Start, End: w.End}
				byStart[w.Start] = gw
			}
			if w.End > gw.End {
				gw.End = w.End
			}
			gw.GroomerIDs = append(gw.GroomerIDs, groomerID)
		}
	}

	out := make([]GroomerWindow, 0, len(byStart))
	for _, gw := range byStart {
		sort.Slice(gw.GroomerIDs, func(i, j int) bool { return gw.GroomerIDs[i] < gw.GroomerIDs[j] })
		out = append(out, *gw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// NowMinutes returns the clipping minute for FreeWindows: the current minute
// of day when date is today in loc, otherwise -1 (no clipping). Dates fully
// in the past yield the end of day so nothing is offered.
func NowMinutes(date time.Time, now time.Time, loc *time.Location) int {
	nowLoc := now.In(loc)
	if SameDate(date, nowLoc, loc) {
		return nowLoc.Hour()*60 + nowLoc.Minute()
	}

	dy, dm, dd := date.In(loc).Date()
	dayStart := time.Date(dy, dm, dd, 0, 0, 0, 0, loc)
	if dayStart.Before(nowLoc) {
		return 24 * 60
	}
	return -1
}
