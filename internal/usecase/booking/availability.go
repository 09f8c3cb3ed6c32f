package booking

import (
	"context"
	"time"

	domain "github.com/shampooches/salon-scheduler/internal/domain/booking"
	"github.com/shampooches/salon-scheduler/internal/httperr"
	"github.com/shampooches/salon-scheduler/internal/infra/cache"
)

// ======================================================
// AVAILABILITY
// ======================================================

type AvailabilityInput struct {
	// GroomerID 0 means "any groomer".
	GroomerID uint
	ServiceID uint
	Date      time.Time
}

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	loc   *time.Location
}

func NewGetAvailability(
	repo domain.Repository,
	availCache *cache.AvailabilityCache,
	loc *time.Location,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: availCache,
		loc:   loc,
	}
}

// Execute returns bookable windows ordered by start time, each tagged with
// the groomers able to serve it. A day with no time slots yields an empty
// list, not an error.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]domain.GroomerWindow, error) {

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeInactiveService)
	}

	if windows, ok := uc.cache.Get(ctx, in.GroomerID, in.Date, in.ServiceID); ok {
		return windows, nil
	}

	nowMinutes := domain.NowMinutes(in.Date, time.Now(), uc.loc)

	var windows []domain.GroomerWindow
	if in.GroomerID != 0 {
		windows, err = uc.forGroomer(ctx, in.GroomerID, in.Date, service.DurationMinutes, nowMinutes)
	} else {
		windows, err = uc.forAnyGroomer(ctx, in.Date, service.DurationMinutes, nowMinutes)
	}
	if err != nil {
		return nil, err
	}

	if windows == nil {
		windows = []domain.GroomerWindow{}
	}

	uc.cache.Set(ctx, in.GroomerID, in.Date, in.ServiceID, windows)
	return windows, nil
}

func (uc *GetAvailability) forGroomer(
	ctx context.Context,
	groomerID uint,
	date time.Time,
	durationMinutes int,
	nowMinutes int,
) ([]domain.GroomerWindow, error) {

	groomer, err := uc.repo.GetGroomer(ctx, groomerID)
	if err != nil {
		return nil, err
	}
	if !groomer.IsActive {
		return []domain.GroomerWindow{}, nil
	}

	free, err := uc.freeWindows(ctx, groomerID, date, durationMinutes, nowMinutes)
	if err != nil {
		return nil, err
	}

	out := make([]domain.GroomerWindow, 0, len(free))
	for _, w := range free {
		out = append(out, domain.GroomerWindow{
			Start:      w.Start,
			End:        w.End,
			GroomerIDs: []uint{groomerID},
		})
	}
	return out, nil
}

func (uc *GetAvailability) forAnyGroomer(
	ctx context.Context,
	date time.Time,
	durationMinutes int,
	nowMinutes int,
) ([]domain.GroomerWindow, error) {

	groomers, err := uc.repo.ListActiveGroomers(ctx)
	if err != nil {
		return nil, err
	}

	perGroomer := make(map[uint][]domain.Window, len(groomers))
	for _, g := range groomers {
		free, err := uc.freeWindows(ctx, g.ID, date, durationMinutes, nowMinutes)
		if err != nil {
			return nil, err
		}
		if len(free) > 0 {
			perGroomer[g.ID] = free
		}
	}

	return domain.MergeGroomerWindows(perGroomer), nil
}

func (uc *GetAvailability) freeWindows(
	ctx context.Context,
	groomerID uint,
	date time.Time,
	durationMinutes int,
	nowMinutes int,
) ([]domain.Window, error) {

	slots, err := uc.repo.ListTimeSlots(ctx, groomerID, date)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, nil
	}

	appointments, err := uc.repo.ListBlockingAppointments(ctx, groomerID, date)
	if err != nil {
		return nil, err
	}

	return domain.FreeWindows(slots, appointments, durationMinutes, nowMinutes), nil
}
