package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type UpdateAppointmentInput struct {
	AppointmentTime *time.Time
	ServiceID       *uint
}

type UpdateAppointment struct {
	d Deps
}

func NewUpdateAppointment(d Deps) *UpdateAppointment {
	return &UpdateAppointment{d: d.withDefaults()}
}

// Execute reschedules and/or changes the service of a scheduled
// appointment, re-running the booking guard against everything but the
// appointment itself.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	caller access.Caller,
	appointmentID uint,
	in UpdateAppointmentInput,
) (ap *models.Appointment, err error) {

	defer func() {
		if err != nil {
			uc.d.Metrics.ObserveBooking("update", bookingOutcome(err))
		}
	}()

	if in.AppointmentTime == nil && in.ServiceID == nil {
		return nil, domain.ErrNothingToUpdate
	}
	if in.AppointmentTime != nil && in.AppointmentTime.IsZero() {
		return nil, domain.ErrMissingAppointmentAt
	}

	var (
		svc     *models.Service
		oldTime time.Time
	)

	err = uc.d.Tx.WithinTx(ctx, func(repo domain.Repository) error {
		// The barber of an appointment never changes, so it can be read
		// before locking. Lock order is barber then appointment, the same
		// as the create flow.
		current, err := repo.GetAppointment(ctx, appointmentID)
		if err != nil {
			return notFoundAs(err, domain.ErrAppointmentNotFound)
		}

		barber, err := repo.LockBarber(ctx, current.BarberID)
		if err != nil {
			return notFoundAs(err, domain.ErrBarberNotFound)
		}

		ap, err = repo.LockAppointment(ctx, appointmentID)
		if err != nil {
			return notFoundAs(err, domain.ErrAppointmentNotFound)
		}

		if err := access.CanModifyAppointment(caller, ap); err != nil {
			return err
		}
		if err := domain.CanEdit(domain.Status(ap.Status)); err != nil {
			return err
		}
		if !barber.IsActive {
			return domain.ErrBarberInactive
		}

		// --------------------------------------------------
		// Target service and time
		// --------------------------------------------------
		if in.ServiceID != nil {
			svc, err = bookableService(ctx, repo, barber, *in.ServiceID)
		} else {
			svc, err = repo.GetService(ctx, ap.ServiceID)
			err = notFoundAs(err, domain.ErrServiceNotFound)
		}
		if err != nil {
			return err
		}

		target := ap.AppointmentTime
		if in.AppointmentTime != nil {
			target = in.AppointmentTime.UTC()
		}

		if err := checkSlot(
			ctx,
			repo,
			uc.d.Loc,
			barber.ID,
			target,
			minutes(svc.Duration),
			ap.ID,
		); err != nil {
			return err
		}

		oldTime = ap.AppointmentTime
		ap.AppointmentTime = target
		ap.ServiceID = svc.ID

		return conflictAsBooked(repo.UpdateAppointment(ctx, ap))
	})
	if err != nil {
		return nil, err
	}

	ap.Service = svc

	uc.d.Cache.Invalidate(ctx, ap.BarberID)
	uc.d.Metrics.ObserveBooking("update", metrics.OutcomeBooked)
	uc.d.Audit.Dispatch(audit.Event{
		UserID:   &caller.UserID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from":       oldTime,
			"to":         ap.AppointmentTime,
			"service_id": ap.ServiceID,
		},
	})

	return ap, nil
}
