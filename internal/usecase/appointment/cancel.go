package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CancelAppointment struct {
	d Deps
}

func NewCancelAppointment(d Deps) *CancelAppointment {
	return &CancelAppointment{d: d.withDefaults()}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	caller access.Caller,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap *models.Appointment

	err := uc.d.Tx.WithinTx(ctx, func(repo domain.Repository) error {
		var err error
		ap, err = repo.LockAppointment(ctx, appointmentID)
		if err != nil {
			return notFoundAs(err, domain.ErrAppointmentNotFound)
		}

		if err := access.CanModifyAppointment(caller, ap); err != nil {
			return err
		}
		if err := domain.Cancel(ap, uc.d.Now()); err != nil {
			return err
		}

		return repo.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.d.Cache.Invalidate(ctx, ap.BarberID)
	uc.d.Audit.Dispatch(audit.Event{
		UserID:   &caller.UserID,
		Action:   "appointment_canceled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
