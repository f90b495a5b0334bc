package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

var ErrInvalidPeriod = httperr.New(httperr.KindInvalidInput, "invalid_period", "Use date=YYYY-MM-DD or month=YYYY-MM.")

type ListAppointmentsInput struct {
	BarberID *uint
	Status   string
	// Date (YYYY-MM-DD) or Month (YYYY-MM) restrict the period; Date wins.
	Date  string
	Month string
}

type ListAppointments struct {
	d Deps
}

func NewListAppointments(d Deps) *ListAppointments {
	return &ListAppointments{d: d.withDefaults()}
}

// Execute lists appointments visible to the caller: customers see their
// own, barbers the ones assigned to them, owners everything.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	caller access.Caller,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	var f domain.ListFilter

	switch {
	case caller.IsCustomer():
		f.CustomerID = &caller.UserID
		f.BarberID = in.BarberID
	case caller.IsBarber():
		if caller.BarberID == 0 {
			return []dto.AppointmentListDTO{}, nil
		}
		f.BarberID = &caller.BarberID
	case caller.IsOwner():
		f.BarberID = in.BarberID
	default:
		return nil, access.ErrForbidden
	}

	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		f.Status = &st
	}

	from, to, err := uc.period(in)
	if err != nil {
		return nil, err
	}
	f.From, f.To = from, to

	apps, err := uc.d.Repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		item := dto.AppointmentListDTO{
			ID:              ap.ID,
			CustomerID:      ap.CustomerID,
			BarberID:        ap.BarberID,
			ServiceID:       ap.ServiceID,
			AppointmentTime: ap.AppointmentTime,
			EndTime:         ap.AppointmentTime,
			Status:          ap.Status,
		}
		if ap.Service != nil {
			item.ServiceName = ap.Service.Name
			item.EndTime = ap.AppointmentTime.Add(minutes(ap.Service.Duration))
		}
		out = append(out, item)
	}

	return out, nil
}

func (uc *ListAppointments) period(in ListAppointmentsInput) (*time.Time, *time.Time, error) {
	loc := uc.d.Loc

	switch {
	case in.Date != "":
		day, err := timezone.ParseDate(in.Date, loc)
		if err != nil {
			return nil, nil, ErrInvalidPeriod
		}
		start, end := timezone.DayBounds(day, loc)
		return &start, &end, nil

	case in.Month != "":
		m, err := time.ParseInLocation("2006-01", in.Month, loc)
		if err != nil {
			return nil, nil, ErrInvalidPeriod
		}
		start := time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, loc)
		end := start.AddDate(0, 1, 0)
		return &start, &end, nil
	}

	return nil, nil, nil
}
