package availability

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ListWindows struct {
	repo domain.Repository
}

func NewListWindows(repo domain.Repository) *ListWindows {
	return &ListWindows{repo: repo}
}

// Execute returns the weekly schedule ordered by day, then start time.
func (uc *ListWindows) Execute(
	ctx context.Context,
	barberID uint,
) ([]models.AvailabilityWindow, error) {

	if err := uc.barberExists(ctx, barberID); err != nil {
		return nil, err
	}

	windows, err := uc.repo.ListWindows(ctx, barberID)
	return nonNil(windows), err
}

// WindowsForDay returns the windows of one weekday; empty means closed.
func (uc *ListWindows) WindowsForDay(
	ctx context.Context,
	barberID uint,
	dayOfWeek int,
) ([]models.AvailabilityWindow, error) {

	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, domain.ErrInvalidDayOfWeek
	}
	if err := uc.barberExists(ctx, barberID); err != nil {
		return nil, err
	}

	windows, err := uc.repo.ListWindowsForDay(ctx, barberID, dayOfWeek)
	return nonNil(windows), err
}

func (uc *ListWindows) barberExists(ctx context.Context, barberID uint) error {
	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrBarberNotFound
		}
		return err
	}
	return nil
}

func nonNil(windows []models.AvailabilityWindow) []models.AvailabilityWindow {
	if windows == nil {
		return []models.AvailabilityWindow{}
	}
	return windows
}
