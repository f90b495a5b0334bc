package repository

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// --------------------------------------------------
// Availability windows
// --------------------------------------------------

func (r *BookingGormRepository) ListWindows(
	ctx context.Context,
	barberID uint,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("day_of_week ASC, start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *BookingGormRepository) ListWindowsForDay(
	ctx context.Context,
	barberID uint,
	dayOfWeek int,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND day_of_week = ?", barberID, dayOfWeek).
		Order("start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *BookingGormRepository) ReplaceWindows(
	ctx context.Context,
	barberID uint,
	windows []models.AvailabilityWindow,
) error {

	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Delete(&models.AvailabilityWindow{}).Error; err != nil {
		return err
	}

	if len(windows) == 0 {
		return nil
	}

	for i := range windows {
		windows[i].ID = 0
		windows[i].BarberID = barberID
	}
	return r.db.WithContext(ctx).Create(&windows).Error
}
