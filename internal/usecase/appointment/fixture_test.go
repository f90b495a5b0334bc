package appointment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil/memstore"
)

// 2024-06-03 is a Monday.
func at(h, m int) time.Time {
	return time.Date(2024, 6, 3, h, m, 0, 0, time.UTC)
}

var monday = at(0, 0)

type fixture struct {
	store *memstore.Store
	deps  Deps

	barber   models.Barber
	svc30    models.Service
	svc60    models.Service
	customer access.Caller
	other    access.Caller
	barberC  access.Caller
	owner    access.Caller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	branch := store.AddBranch(models.Branch{BarbershopID: 1, Name: "Centro"})
	barber := store.AddBarber(models.Barber{UserID: 20, BranchID: branch.ID, IsActive: true})
	svc30 := store.AddService(models.Service{BarbershopID: 1, Name: "Corte", Duration: 30, IsActive: true})
	svc60 := store.AddService(models.Service{BarbershopID: 1, BranchID: &branch.ID, Name: "Corte + Barba", Duration: 60, IsActive: true})
	store.AddWindow(models.AvailabilityWindow{BarberID: barber.ID, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"})

	return &fixture{
		store: store,
		deps: Deps{
			Repo:    store,
			Tx:      store,
			Metrics: metrics.New("test"),
			Loc:     time.UTC,
			Now:     func() time.Time { return at(8, 0) },
		},
		barber:   barber,
		svc30:    svc30,
		svc60:    svc60,
		customer: access.Caller{UserID: 100, Role: models.RoleCustomer},
		other:    access.Caller{UserID: 101, Role: models.RoleCustomer},
		barberC:  access.Caller{UserID: 20, Role: models.RoleBarber, BarberID: barber.ID},
		owner:    access.Caller{UserID: 1, Role: models.RoleOwner},
	}
}

func (f *fixture) book(t *testing.T, caller access.Caller, svc models.Service, when time.Time) (*models.Appointment, error) {
	t.Helper()
	return NewCreateAppointment(f.deps).Execute(context.Background(), caller, CreateAppointmentInput{
		BarberID:        f.barber.ID,
		ServiceID:       svc.ID,
		AppointmentTime: when,
	})
}

func (f *fixture) slots(t *testing.T, svc *models.Service) []time.Time {
	t.Helper()
	in := availabilityInput(f.barber.ID, monday, svc)
	res, err := NewGetAvailability(f.deps).Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	return res.Slots
}

// mapCache is a SlotCache kept in memory with the same versioning
// contract as the Redis cache, used to observe invalidation.
type mapCache struct {
	mu      sync.Mutex
	version map[uint]int64
	entries map[string]cache.Entry
}

func newMapCache() *mapCache {
	return &mapCache{version: map[uint]int64{}, entries: map[string]cache.Entry{}}
}

func mapKey(barberID uint, version int64, date string, d int) string {
	return fmt.Sprintf("%d:%d:%s:%d", barberID, version, date, d)
}

func (c *mapCache) Get(_ context.Context, barberID uint, date string, d int) (*cache.Entry, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ver := c.version[barberID]
	e, ok := c.entries[mapKey(barberID, ver, date, d)]
	if !ok {
		return nil, ver, false
	}
	return &e, ver, true
}

func (c *mapCache) Set(_ context.Context, barberID uint, version int64, date string, d int, e cache.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[mapKey(barberID, version, date, d)] = e
}

func (c *mapCache) Invalidate(_ context.Context, barberID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version[barberID]++
}

// hookedRepo runs afterBusy once the busy intervals have been read, to
// interleave a write between a slot query's reads and its cache fill.
type hookedRepo struct {
	domain.Repository
	afterBusy func()
}

func (r *hookedRepo) ListBusyIntervals(
	ctx context.Context,
	barberID uint,
	from, to time.Time,
	excludeID uint,
) ([]domain.Interval, error) {
	busy, err := r.Repository.ListBusyIntervals(ctx, barberID, from, to, excludeID)
	if r.afterBusy != nil {
		r.afterBusy()
	}
	return busy, err
}
