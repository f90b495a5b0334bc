package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarberID        uint
	ServiceID       uint
	AppointmentTime time.Time
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	d Deps
}

func NewCreateAppointment(d Deps) *CreateAppointment {
	return &CreateAppointment{d: d.withDefaults()}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute books a slot for the calling customer. Every check runs inside
// one transaction holding the barber row lock; nothing is written unless
// all of them pass.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	caller access.Caller,
	in CreateAppointmentInput,
) (ap *models.Appointment, err error) {

	defer func() {
		if err != nil {
			uc.d.Metrics.ObserveBooking("create", bookingOutcome(err))
		}
	}()

	if err := access.CanBook(caller); err != nil {
		return nil, err
	}
	if in.AppointmentTime.IsZero() {
		return nil, domain.ErrMissingAppointmentAt
	}

	var svc *models.Service

	err = uc.d.Tx.WithinTx(ctx, func(repo domain.Repository) error {
		// --------------------------------------------------
		// 1. Barber (locked) and service
		// --------------------------------------------------
		barber, err := repo.LockBarber(ctx, in.BarberID)
		if err != nil {
			return notFoundAs(err, domain.ErrBarberNotFound)
		}
		if !barber.IsActive {
			return domain.ErrBarberInactive
		}

		svc, err = bookableService(ctx, repo, barber, in.ServiceID)
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// 2-3. Window fit + collision
		// --------------------------------------------------
		if err := checkSlot(
			ctx,
			repo,
			uc.d.Loc,
			barber.ID,
			in.AppointmentTime,
			minutes(svc.Duration),
			0,
		); err != nil {
			return err
		}

		// --------------------------------------------------
		// 4. Insert
		// --------------------------------------------------
		ap = &models.Appointment{
			CustomerID:      caller.UserID,
			BarberID:        barber.ID,
			ServiceID:       svc.ID,
			AppointmentTime: in.AppointmentTime.UTC(),
			Status:          string(domain.InitialStatus()),
		}
		return conflictAsBooked(repo.CreateAppointment(ctx, ap))
	})
	if err != nil {
		return nil, err
	}

	ap.Service = svc

	uc.d.Cache.Invalidate(ctx, ap.BarberID)
	uc.d.Metrics.ObserveBooking("create", metrics.OutcomeBooked)
	uc.d.Audit.Dispatch(audit.Event{
		UserID:   &caller.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"barber_id":        ap.BarberID,
			"service_id":       ap.ServiceID,
			"appointment_time": ap.AppointmentTime,
		},
	})
	uc.d.Log.Info("appointment created",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("barber_id", ap.BarberID),
		zap.Time("appointment_time", ap.AppointmentTime),
	)

	return ap, nil
}
