package booking

import (
	"context"

	"github.com/shampooches/salon-scheduler/internal/audit"
	domain "github.com/shampooches/salon-scheduler/internal/domain/booking"
	"github.com/shampooches/salon-scheduler/internal/infra/cache"
	"github.com/shampooches/salon-scheduler/internal/models"
	"github.com/shampooches/salon-scheduler/internal/notify"
)

// ======================================================
// USE CASE
// ======================================================

type UpdateStatus struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
	cache  *cache.AvailabilityCache
}

func NewUpdateStatus(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	notifyDispatcher *notify.Dispatcher,
	availCache *cache.AvailabilityCache,
) *UpdateStatus {
	return &UpdateStatus{
		repo:   repo,
		audit:  auditDispatcher,
		notify: notifyDispatcher,
		cache:  availCache,
	}
}

// Execute moves an appointment to target and fires the customer notification
// for the transition. actorID is the staff or customer account performing the
// change, recorded in the audit trail.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	target domain.Status,
	actorID *uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	previous, err := domain.Transition(ap, target)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Cancelling frees the slot, so cached availability for that day is stale.
	if target == domain.StatusCancelled && ap.GroomerID != nil {
		uc.cache.InvalidateDay(ctx, *ap.GroomerID, ap.Date)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "booking_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from": string(previous),
			"to":   string(target),
		},
	})

	uc.notify.StatusChanged(ap, string(previous))

	return ap, nil
}
