package appointment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Deps are the collaborators shared by the appointment use cases.
type Deps struct {
	Repo    domain.Repository
	Tx      domain.Transactor
	Audit   *audit.Dispatcher
	Cache   cache.SlotCache
	Metrics *metrics.Metrics
	Log     *zap.Logger

	// Loc is the reference zone for calendar dates and window times.
	Loc *time.Location
	Now func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Cache == nil {
		d.Cache = cache.NoopCache{}
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Loc == nil {
		d.Loc = time.UTC
	}
	if d.Now == nil {
		loc := d.Loc
		d.Now = func() time.Time { return timezone.NowIn(loc) }
	}
	return d
}

// --------------------------------------------------
// Helpers shared by the booking flows
// --------------------------------------------------

func notFoundAs(err error, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

// bookableService loads an active service offered where the barber works:
// at the barber's branch, or shop-wide when the service has no branch.
func bookableService(
	ctx context.Context,
	repo domain.Repository,
	barber *models.Barber,
	serviceID uint,
) (*models.Service, error) {

	svc, err := repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrServiceNotFound)
	}
	if !svc.IsActive {
		return nil, domain.ErrServiceInactive
	}
	if svc.Duration <= 0 {
		return nil, domain.ErrInvalidDuration
	}

	if svc.BranchID != nil {
		if *svc.BranchID != barber.BranchID {
			return nil, domain.ErrServiceOutOfScope
		}
		return svc, nil
	}

	branch, err := repo.GetBranch(ctx, barber.BranchID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrBranchNotFound)
	}
	if branch.BarbershopID != svc.BarbershopID {
		return nil, domain.ErrServiceOutOfScope
	}
	return svc, nil
}

// checkSlot runs the window-fit and collision checks of the booking guard.
// excludeID keeps an appointment from colliding with itself on update.
func checkSlot(
	ctx context.Context,
	repo domain.Repository,
	loc *time.Location,
	barberID uint,
	at time.Time,
	duration time.Duration,
	excludeID uint,
) error {

	local := at.In(loc)
	windows, err := repo.ListWindowsForDay(ctx, barberID, int(local.Weekday()))
	if err != nil {
		return err
	}

	open := domain.OpenIntervals(local, windows, loc)
	if !domain.FitsWindow(open, at, duration) {
		return domain.ErrOutsideWorkingHours
	}

	existing, err := repo.FindActiveAt(ctx, barberID, at, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrSlotAlreadyBooked
	}
	return nil
}

// conflictAsBooked maps the storage uniqueness rejection to the domain error.
func conflictAsBooked(err error) error {
	if errors.Is(err, domain.ErrBookingConflict) {
		return domain.ErrSlotAlreadyBooked
	}
	return err
}

func bookingOutcome(err error) string {
	switch httperr.KindOf(err) {
	case httperr.KindSlotAlreadyBooked:
		return metrics.OutcomeConflict
	case httperr.KindOutsideWorkingHours:
		return metrics.OutcomeOutsideHours
	case httperr.KindInternal:
		return metrics.OutcomeError
	default:
		return metrics.OutcomeRejected
	}
}

func minutes(d int) time.Duration {
	return time.Duration(d) * time.Minute
}
