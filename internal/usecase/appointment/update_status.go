package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type UpdateAppointmentStatus struct {
	d Deps
}

func NewUpdateAppointmentStatus(d Deps) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{d: d.withDefaults()}
}

// Execute moves a scheduled appointment to completed or canceled. Only the
// assigned barber and owners may do it.
func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	caller access.Caller,
	appointmentID uint,
	status string,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var ap *models.Appointment

	err = uc.d.Tx.WithinTx(ctx, func(repo domain.Repository) error {
		var err error
		ap, err = repo.LockAppointment(ctx, appointmentID)
		if err != nil {
			return notFoundAs(err, domain.ErrAppointmentNotFound)
		}

		if err := access.CanChangeStatus(caller, ap); err != nil {
			return err
		}
		if err := domain.Transition(ap, to, uc.d.Now()); err != nil {
			return err
		}

		return repo.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	if to == domain.StatusCanceled {
		uc.d.Cache.Invalidate(ctx, ap.BarberID)
	}
	uc.d.Audit.Dispatch(audit.Event{
		UserID:   &caller.UserID,
		Action:   "appointment_" + string(to),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
