package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type GetAppointment struct {
	d Deps
}

func NewGetAppointment(d Deps) *GetAppointment {
	return &GetAppointment{d: d.withDefaults()}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	caller access.Caller,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.d.Repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrAppointmentNotFound)
	}
	if err := access.CanViewAppointment(caller, ap); err != nil {
		return nil, err
	}
	return ap, nil
}
