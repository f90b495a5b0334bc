// Package access holds the role capability checks used by the use cases.
// Handlers only authenticate; every authorization decision is made here.
package access

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var ErrForbidden = httperr.New(httperr.KindForbidden, "forbidden", "Not authorized to perform this action.")

// Caller is the authenticated principal of a request. BarberID is set only
// for barbers and refers to their barber record, not their user id.
type Caller struct {
	UserID   uint
	Role     string
	BarberID uint
}

func (c Caller) IsOwner() bool    { return c.Role == models.RoleOwner }
func (c Caller) IsBarber() bool   { return c.Role == models.RoleBarber }
func (c Caller) IsCustomer() bool { return c.Role == models.RoleCustomer }

// CanBook: only customers create appointments, always for themselves.
func CanBook(c Caller) error {
	if !c.IsCustomer() {
		return ErrForbidden
	}
	return nil
}

// CanViewAppointment allows the owning customer, the assigned barber and
// any owner.
func CanViewAppointment(c Caller, ap *models.Appointment) error {
	switch {
	case c.IsOwner():
		return nil
	case c.IsCustomer() && ap.CustomerID == c.UserID:
		return nil
	case c.IsBarber() && c.BarberID != 0 && ap.BarberID == c.BarberID:
		return nil
	}
	return ErrForbidden
}

// CanModifyAppointment covers reschedule and cancel; same parties as view.
func CanModifyAppointment(c Caller, ap *models.Appointment) error {
	return CanViewAppointment(c, ap)
}

// CanChangeStatus is reserved to the assigned barber and owners.
func CanChangeStatus(c Caller, ap *models.Appointment) error {
	switch {
	case c.IsOwner():
		return nil
	case c.IsBarber() && c.BarberID != 0 && ap.BarberID == c.BarberID:
		return nil
	}
	return ErrForbidden
}

// CanManageWindows lets a barber edit their own windows; owners edit any.
func CanManageWindows(c Caller, barberID uint) error {
	switch {
	case c.IsOwner():
		return nil
	case c.IsBarber() && c.BarberID != 0 && c.BarberID == barberID:
		return nil
	}
	return ErrForbidden
}

func CanReadAudit(c Caller) error {
	if !c.IsOwner() {
		return ErrForbidden
	}
	return nil
}

type BarberLookup interface {
	GetBarberByUserID(ctx context.Context, userID uint) (*models.Barber, error)
}

// Resolve builds the Caller for an authenticated user. A barber user with
// no barber record gets BarberID 0 and therefore no barber capabilities.
func Resolve(ctx context.Context, lookup BarberLookup, userID uint, role string) (Caller, error) {
	c := Caller{UserID: userID, Role: role}
	if role != models.RoleBarber {
		return c, nil
	}

	b, err := lookup.GetBarberByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c, nil
	}
	if err != nil {
		return Caller{}, err
	}
	c.BarberID = b.ID
	return c, nil
}
