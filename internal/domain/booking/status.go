package booking

import (
	"github.com/shampooches/salon-scheduler/internal/httperr"
	"github.com/shampooches/salon-scheduler/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// BlockingStatuses are the statuses that occupy a groomer's time slot.
// Completed appointments keep blocking so an already-served slot cannot be
// rebooked the same day. Cancelled slots are free.
var BlockingStatuses = []string{
	string(StatusPending),
	string(StatusConfirmed),
	string(StatusCompleted),
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0 && s.IsValid()
}

// CanTransition reports whether moving from s to target is allowed.
func (s Status) CanTransition(target Status) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// ===============================
// Domain Actions
// ===============================

// Transition applies a status change to the appointment, rejecting anything
// the workflow does not allow. It returns the previous status so callers can
// hand it to the notification step explicitly.
func Transition(ap *models.Appointment, target Status) (Status, error) {
	if !target.IsValid() {
		return "", httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	current := Status(ap.Status)
	if !current.CanTransition(target) {
		return "", httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	ap.Status = string(target)
	return current, nil
}

func InitialStatus() Status {
	return StatusPending
}
