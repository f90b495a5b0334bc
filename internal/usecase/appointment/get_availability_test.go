package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func availabilityInput(barberID uint, date time.Time, svc *models.Service) domain.AvailabilityInput {
	in := domain.AvailabilityInput{BarberID: barberID, Date: date}
	if svc != nil {
		in.ServiceID = &svc.ID
	}
	return in
}

func TestGetAvailability_OpenMonday(t *testing.T) {
	f := newFixture(t)

	res, err := NewGetAvailability(f.deps).Execute(context.Background(), availabilityInput(f.barber.ID, monday, nil))
	require.NoError(t, err)

	assert.False(t, res.Closed)
	assert.Equal(t, 30, res.DurationMinutes)
	assert.Equal(t, []time.Time{at(9, 0), at(9, 30), at(10, 0), at(10, 30), at(11, 0), at(11, 30)}, res.Slots)
}

func TestGetAvailability_ExcludesBooked(t *testing.T) {
	f := newFixture(t)
	_, err := f.book(t, f.customer, f.svc30, at(10, 0))
	require.NoError(t, err)

	slots := f.slots(t, &f.svc30)
	assert.NotContains(t, slots, at(10, 0))
	assert.Len(t, slots, 5)

	// A 60 minute service cannot start at 09:30 either.
	long := f.slots(t, &f.svc60)
	assert.Equal(t, []time.Time{at(9, 0), at(10, 30), at(11, 0)}, long)
}

func TestGetAvailability_CanceledDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.store.AddAppointment(models.Appointment{
		CustomerID: 100, BarberID: f.barber.ID, ServiceID: f.svc30.ID,
		AppointmentTime: at(10, 0), Status: string(domain.StatusCanceled),
	})

	assert.Contains(t, f.slots(t, nil), at(10, 0))
}

func TestGetAvailability_ClosedDay(t *testing.T) {
	f := newFixture(t)
	sunday := monday.AddDate(0, 0, -1)

	res, err := NewGetAvailability(f.deps).Execute(context.Background(), availabilityInput(f.barber.ID, sunday, nil))
	require.NoError(t, err)

	assert.True(t, res.Closed)
	assert.NotNil(t, res.Slots)
	assert.Empty(t, res.Slots)
}

func TestGetAvailability_Errors(t *testing.T) {
	f := newFixture(t)
	uc := NewGetAvailability(f.deps)
	ctx := context.Background()

	_, err := uc.Execute(ctx, availabilityInput(999, monday, nil))
	assert.ErrorIs(t, err, domain.ErrBarberNotFound)

	inactive := f.store.AddBarber(models.Barber{UserID: 21, BranchID: f.barber.BranchID, IsActive: false})
	_, err = uc.Execute(ctx, availabilityInput(inactive.ID, monday, nil))
	assert.ErrorIs(t, err, domain.ErrBarberNotFound)

	missing := models.Service{ID: 999}
	_, err = uc.Execute(ctx, availabilityInput(f.barber.ID, monday, &missing))
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)

	off := f.store.AddService(models.Service{BarbershopID: 1, Duration: 30, IsActive: false})
	_, err = uc.Execute(ctx, availabilityInput(f.barber.ID, monday, &off))
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
}

func TestGetAvailability_CacheInvalidatedByBooking(t *testing.T) {
	f := newFixture(t)
	c := newMapCache()
	f.deps.Cache = c

	first := f.slots(t, nil)
	require.Contains(t, first, at(10, 0))

	_, err := f.book(t, f.customer, f.svc30, at(10, 0))
	require.NoError(t, err)

	assert.NotContains(t, f.slots(t, nil), at(10, 0))
}

func TestGetAvailability_BookingDuringComputeNotCached(t *testing.T) {
	f := newFixture(t)
	c := newMapCache()
	f.deps.Cache = c

	var once sync.Once
	readDeps := f.deps
	readDeps.Repo = &hookedRepo{Repository: f.store, afterBusy: func() {
		once.Do(func() {
			_, err := f.book(t, f.customer, f.svc30, at(10, 0))
			require.NoError(t, err)
		})
	}}

	// computed from a ledger read taken before the booking committed
	stale, err := NewGetAvailability(readDeps).Execute(context.Background(), availabilityInput(f.barber.ID, monday, nil))
	require.NoError(t, err)
	require.Contains(t, stale.Slots, at(10, 0))

	fresh := f.slots(t, nil)
	assert.NotContains(t, fresh, at(10, 0))
	assert.Len(t, fresh, 5)
}
