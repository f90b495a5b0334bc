// Package memstore is an in-memory implementation of the booking
// repository and transactor for use-case tests. Transactions are
// serialized and roll back to a snapshot on error; non-canceled
// appointments are unique per (barber, instant) like the database index.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type state struct {
	nextID       uint
	barbers      map[uint]models.Barber
	branches     map[uint]models.Branch
	services     map[uint]models.Service
	windows      []models.AvailabilityWindow
	appointments map[uint]models.Appointment
}

type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   state

	// SkipPrecheck makes FindActiveAt report nothing, so conflicting writes
	// only meet the uniqueness check (a lost race).
	SkipPrecheck bool

	// FailReplace makes ReplaceWindows fail after the delete step.
	FailReplace bool
}

func New() *Store {
	return &Store{st: state{
		barbers:      map[uint]models.Barber{},
		branches:     map[uint]models.Branch{},
		services:     map[uint]models.Service{},
		appointments: map[uint]models.Appointment{},
	}}
}

func (s *Store) id() uint {
	s.st.nextID++
	return s.st.nextID
}

func (s *state) clone() state {
	c := state{
		nextID:       s.nextID,
		barbers:      make(map[uint]models.Barber, len(s.barbers)),
		branches:     make(map[uint]models.Branch, len(s.branches)),
		services:     make(map[uint]models.Service, len(s.services)),
		windows:      append([]models.AvailabilityWindow(nil), s.windows...),
		appointments: make(map[uint]models.Appointment, len(s.appointments)),
	}
	for k, v := range s.barbers {
		c.barbers[k] = v
	}
	for k, v := range s.branches {
		c.branches[k] = v
	}
	for k, v := range s.services {
		c.services[k] = v
	}
	for k, v := range s.appointments {
		c.appointments[k] = v
	}
	return c
}

// ===============================
// Transactor
// ===============================

func (s *Store) WithinTx(ctx context.Context, fn func(repo domain.Repository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := s.st.clone()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.st = snap
		s.mu.Unlock()
		return err
	}
	return nil
}

// ===============================
// Seeding
// ===============================

func (s *Store) AddBranch(b models.Branch) models.Branch {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.id()
	s.st.branches[b.ID] = b
	return b
}

func (s *Store) AddBarber(b models.Barber) models.Barber {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.id()
	s.st.barbers[b.ID] = b
	return b
}

func (s *Store) AddService(svc models.Service) models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc.ID = s.id()
	s.st.services[svc.ID] = svc
	return svc
}

func (s *Store) AddWindow(w models.AvailabilityWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.ID = s.id()
	s.st.windows = append(s.st.windows, w)
}

func (s *Store) AddAppointment(ap models.Appointment) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap.ID = s.id()
	s.st.appointments[ap.ID] = ap
	return ap
}

// Appointments returns every stored appointment ordered by id.
func (s *Store) Appointments() []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Appointment, 0, len(s.st.appointments))
	for _, ap := range s.st.appointments {
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ===============================
// Repository
// ===============================

func (s *Store) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.st.barbers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (s *Store) LockBarber(ctx context.Context, id uint) (*models.Barber, error) {
	return s.GetBarber(ctx, id)
}

func (s *Store) GetBarberByUserID(_ context.Context, userID uint) (*models.Barber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.st.barbers {
		if b.UserID == userID {
			return &b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Store) GetBranch(_ context.Context, id uint) (*models.Branch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.st.branches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (s *Store) GetService(_ context.Context, id uint) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.st.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &svc, nil
}

func (s *Store) ListWindows(_ context.Context, barberID uint) ([]models.AvailabilityWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.AvailabilityWindow
	for _, w := range s.st.windows {
		if w.BarberID == barberID {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (s *Store) ListWindowsForDay(ctx context.Context, barberID uint, dayOfWeek int) ([]models.AvailabilityWindow, error) {
	all, _ := s.ListWindows(ctx, barberID)
	var out []models.AvailabilityWindow
	for _, w := range all {
		if w.DayOfWeek == dayOfWeek {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *Store) ReplaceWindows(_ context.Context, barberID uint, windows []models.AvailabilityWindow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.st.windows[:0:0]
	for _, w := range s.st.windows {
		if w.BarberID != barberID {
			kept = append(kept, w)
		}
	}
	s.st.windows = kept

	if s.FailReplace {
		return errors.New("memstore: insert failed")
	}

	for _, w := range windows {
		w.ID = s.id()
		w.BarberID = barberID
		s.st.windows = append(s.st.windows, w)
	}
	return nil
}

func (s *Store) ListBusyIntervals(_ context.Context, barberID uint, from, to time.Time, excludeID uint) ([]domain.Interval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Interval
	for _, ap := range s.st.appointments {
		if ap.BarberID != barberID || ap.Status == string(domain.StatusCanceled) || ap.ID == excludeID {
			continue
		}
		iv := domain.Occupied(ap.AppointmentTime, s.st.services[ap.ServiceID].Duration)
		if iv.Start.Before(to) && iv.End.After(from) {
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (s *Store) FindActiveAt(_ context.Context, barberID uint, at time.Time, excludeID uint) (*models.Appointment, error) {
	if s.SkipPrecheck {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ap := s.activeAt(barberID, at, excludeID); ap != nil {
		return ap, nil
	}
	return nil, nil
}

func (s *Store) activeAt(barberID uint, at time.Time, excludeID uint) *models.Appointment {
	for _, ap := range s.st.appointments {
		if ap.BarberID == barberID &&
			ap.AppointmentTime.Equal(at) &&
			ap.Status != string(domain.StatusCanceled) &&
			ap.ID != excludeID {
			return &ap
		}
	}
	return nil
}

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ap.Status != string(domain.StatusCanceled) && s.activeAt(ap.BarberID, ap.AppointmentTime, 0) != nil {
		return domain.ErrBookingConflict
	}

	ap.ID = s.id()
	now := time.Now()
	ap.CreatedAt, ap.UpdatedAt = now, now

	row := *ap
	row.Service, row.Barber, row.Customer = nil, nil, nil
	s.st.appointments[ap.ID] = row
	return nil
}

func (s *Store) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap, ok := s.st.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if svc, ok := s.st.services[ap.ServiceID]; ok {
		ap.Service = &svc
	}
	return &ap, nil
}

func (s *Store) LockAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap, ok := s.st.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &ap, nil
}

func (s *Store) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.st.appointments[ap.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if ap.Status != string(domain.StatusCanceled) && s.activeAt(ap.BarberID, ap.AppointmentTime, ap.ID) != nil {
		return domain.ErrBookingConflict
	}

	ap.UpdatedAt = time.Now()
	row := *ap
	row.Service, row.Barber, row.Customer = nil, nil, nil
	s.st.appointments[ap.ID] = row
	return nil
}

func (s *Store) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Appointment
	for _, ap := range s.st.appointments {
		switch {
		case f.CustomerID != nil && ap.CustomerID != *f.CustomerID,
			f.BarberID != nil && ap.BarberID != *f.BarberID,
			f.Status != nil && ap.Status != string(*f.Status),
			f.From != nil && ap.AppointmentTime.Before(*f.From),
			f.To != nil && !ap.AppointmentTime.Before(*f.To):
			continue
		}
		if svc, ok := s.st.services[ap.ServiceID]; ok {
			ap.Service = &svc
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentTime.Before(out[j].AppointmentTime) })
	return out, nil
}

var (
	_ domain.Repository = (*Store)(nil)
	_ domain.Transactor = (*Store)(nil)
)
