package appointment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetAvailability struct {
	d Deps
}

func NewGetAvailability(d Deps) *GetAvailability {
	return &GetAvailability{d: d.withDefaults()}
}

// Execute lists the bookable start instants of a barber on a calendar date.
// A weekday without windows yields an empty, Closed result.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.AvailabilityResult, error) {

	repo := uc.d.Repo
	loc := uc.d.Loc

	barber, err := repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrBarberNotFound)
	}
	if !barber.IsActive {
		return nil, domain.ErrBarberNotFound
	}

	duration := domain.DefaultServiceDuration
	if in.ServiceID != nil {
		svc, err := bookableService(ctx, repo, barber, *in.ServiceID)
		if err != nil {
			if errors.Is(err, domain.ErrServiceInactive) {
				return nil, domain.ErrServiceNotFound
			}
			return nil, err
		}
		duration = minutes(svc.Duration)
	}

	dayStart, dayEnd := timezone.DayBounds(in.Date, loc)
	dateKey := dayStart.Format("2006-01-02")
	durationMin := int(duration.Minutes())

	result := &domain.AvailabilityResult{
		BarberID:        barber.ID,
		Date:            dayStart,
		ServiceID:       in.ServiceID,
		DurationMinutes: durationMin,
	}

	e, version, ok := uc.d.Cache.Get(ctx, barber.ID, dateKey, durationMin)
	if ok {
		uc.d.Metrics.ObserveSlotQuery(true)
		result.Slots = e.Slots
		result.Closed = e.Closed
		return result, nil
	}
	uc.d.Metrics.ObserveSlotQuery(false)

	// --------------------------------------------------
	// Windows of the weekday
	// --------------------------------------------------
	windows, err := repo.ListWindowsForDay(ctx, barber.ID, int(dayStart.Weekday()))
	if err != nil {
		return nil, err
	}

	open := domain.OpenIntervals(dayStart, windows, loc)
	if len(open) == 0 {
		result.Closed = true
		result.Slots = []time.Time{}
		uc.d.Cache.Set(ctx, barber.ID, version, dateKey, durationMin, cache.Entry{Slots: result.Slots, Closed: true})
		return result, nil
	}

	// --------------------------------------------------
	// Busy intervals + generation
	// --------------------------------------------------
	busy, err := repo.ListBusyIntervals(ctx, barber.ID, dayStart, dayEnd, 0)
	if err != nil {
		return nil, err
	}

	result.Slots = domain.GenerateSlots(open, busy, duration, domain.SlotGranularity)

	uc.d.Cache.Set(ctx, barber.ID, version, dateKey, durationMin, cache.Entry{Slots: result.Slots})
	uc.d.Log.Debug("slots computed",
		zap.Uint("barber_id", barber.ID),
		zap.String("date", dateKey),
		zap.Int("duration_min", durationMin),
		zap.Int("count", len(result.Slots)),
	)

	return result, nil
}
