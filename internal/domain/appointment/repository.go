package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Repository is the explicit data contract of the booking engine. Lookups
// that find nothing return gorm.ErrRecordNotFound; writes rejected by the
// (barber, appointment time) uniqueness rule return ErrBookingConflict.
type Repository interface {
	// -------- Barber / Branch / Service --------
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)

	// LockBarber reads the barber row FOR UPDATE, serializing writers that
	// touch the same barber's calendar inside a transaction.
	LockBarber(ctx context.Context, id uint) (*models.Barber, error)

	GetBarberByUserID(ctx context.Context, userID uint) (*models.Barber, error)

	GetBranch(ctx context.Context, id uint) (*models.Branch, error)

	GetService(ctx context.Context, id uint) (*models.Service, error)

	// -------- Availability windows --------
	ListWindows(ctx context.Context, barberID uint) ([]models.AvailabilityWindow, error)

	ListWindowsForDay(ctx context.Context, barberID uint, dayOfWeek int) ([]models.AvailabilityWindow, error)

	// ReplaceWindows deletes every window of the barber and inserts the new
	// set. Callers run it inside a transaction.
	ReplaceWindows(ctx context.Context, barberID uint, windows []models.AvailabilityWindow) error

	// -------- Booking ledger --------
	ListBusyIntervals(ctx context.Context, barberID uint, from, to time.Time, excludeID uint) ([]Interval, error)

	// FindActiveAt returns the non-canceled appointment of the barber at
	// exactly at, or nil. excludeID (if non-zero) is ignored.
	FindActiveAt(ctx context.Context, barberID uint, at time.Time, excludeID uint) (*models.Appointment, error)

	// -------- Appointment --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	LockAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	ListAppointments(ctx context.Context, filter ListFilter) ([]models.Appointment, error)
}

// Transactor runs fn against a repository bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repo Repository) error) error
}

type ListFilter struct {
	CustomerID *uint
	BarberID   *uint
	Status     *Status
	From       *time.Time
	To         *time.Time
}
