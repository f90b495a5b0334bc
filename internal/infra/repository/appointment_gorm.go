package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// --------------------------------------------------
// Booking ledger
// --------------------------------------------------

type busyRow struct {
	AppointmentTime time.Time
	Duration        int
}

// ListBusyIntervals projects every non-canceled appointment of the barber
// whose occupied interval intersects [from, to).
func (r *BookingGormRepository) ListBusyIntervals(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
	excludeID uint,
) ([]domain.Interval, error) {

	q := r.db.WithContext(ctx).
		Table("appointments AS a").
		Select("a.appointment_time, s.duration").
		Joins("JOIN services AS s ON s.id = a.service_id").
		Where("a.barber_id = ? AND a.status <> ?", barberID, string(domain.StatusCanceled)).
		Where("a.appointment_time < ?", to).
		Where("a.appointment_time + s.duration * INTERVAL '1 minute' > ?", from)

	if excludeID != 0 {
		q = q.Where("a.id <> ?", excludeID)
	}

	var rows []busyRow
	if err := q.Order("a.appointment_time ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Interval, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Occupied(row.AppointmentTime, row.Duration))
	}
	return out, nil
}

func (r *BookingGormRepository) FindActiveAt(
	ctx context.Context,
	barberID uint,
	at time.Time,
	excludeID uint,
) (*models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where("barber_id = ? AND appointment_time = ? AND status <> ?",
			barberID, at, string(domain.StatusCanceled))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var ap models.Appointment
	err := q.First(&ap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return translateWriteError(r.db.WithContext(ctx).Create(ap).Error)
}

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) LockAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	// Associations are loaded for responses only.
	return translateWriteError(r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(ap).Error)
}

func (r *BookingGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Preload("Service")

	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.BarberID != nil {
		q = q.Where("barber_id = ?", *f.BarberID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	if f.From != nil {
		q = q.Where("appointment_time >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("appointment_time < ?", *f.To)
	}

	var apps []models.Appointment
	if err := q.Order("appointment_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}
