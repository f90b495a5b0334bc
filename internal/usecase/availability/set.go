package availability

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type SetWindows struct {
	tx    domain.Transactor
	cache cache.SlotCache
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewSetWindows(
	tx domain.Transactor,
	slotCache cache.SlotCache,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *SetWindows {
	if slotCache == nil {
		slotCache = cache.NoopCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SetWindows{tx: tx, cache: slotCache, audit: audit, log: log}
}

// Execute replaces the barber's whole weekly schedule. The batch is
// validated before the store is touched; delete and insert share one
// transaction, so a failure leaves the previous set in place.
func (uc *SetWindows) Execute(
	ctx context.Context,
	caller access.Caller,
	barberID uint,
	windows []models.AvailabilityWindow,
) ([]models.AvailabilityWindow, error) {

	if err := access.CanManageWindows(caller, barberID); err != nil {
		return nil, err
	}

	normalized, err := domain.ValidateWindows(barberID, windows)
	if err != nil {
		return nil, err
	}

	var saved []models.AvailabilityWindow

	err = uc.tx.WithinTx(ctx, func(repo domain.Repository) error {
		if _, err := repo.LockBarber(ctx, barberID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBarberNotFound
			}
			return err
		}

		if err := repo.ReplaceWindows(ctx, barberID, normalized); err != nil {
			return err
		}

		list, err := repo.ListWindows(ctx, barberID)
		saved = list
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, barberID)
	uc.audit.Dispatch(audit.Event{
		UserID:   &caller.UserID,
		Action:   "availability_replaced",
		Entity:   "barber",
		EntityID: &barberID,
		Metadata: map[string]any{"windows": len(saved)},
	})
	uc.log.Info("availability replaced", zap.Uint("barber_id", barberID), zap.Int("windows", len(saved)))

	return saved, nil
}
