package appointment

import (
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

var (
	ErrBarberNotFound      = httperr.New(httperr.KindNotFound, "barber_not_found", "Barber not found.")
	ErrServiceNotFound     = httperr.New(httperr.KindNotFound, "service_not_found", "Service not found.")
	ErrBranchNotFound      = httperr.New(httperr.KindNotFound, "branch_not_found", "Branch not found.")
	ErrAppointmentNotFound = httperr.New(httperr.KindNotFound, "appointment_not_found", "Appointment not found.")

	ErrBarberInactive       = httperr.New(httperr.KindInvalidInput, "barber_inactive", "Barber is not accepting bookings.")
	ErrServiceInactive      = httperr.New(httperr.KindInvalidInput, "service_inactive", "Service is not available.")
	ErrServiceOutOfScope    = httperr.New(httperr.KindInvalidInput, "service_not_offered", "Service is not offered at this barber's branch.")
	ErrInvalidDuration      = httperr.New(httperr.KindInvalidInput, "invalid_duration", "Service duration must be a positive number of minutes.")
	ErrInvalidStatus        = httperr.New(httperr.KindInvalidInput, "invalid_status", "Invalid appointment status.")
	ErrInvalidDayOfWeek     = httperr.New(httperr.KindInvalidInput, "invalid_day_of_week", "Day of week must be between 0 and 6.")
	ErrInvalidTimeOfDay     = httperr.New(httperr.KindInvalidInput, "invalid_time_of_day", "Times must use the HH:MM format.")
	ErrWindowOrder          = httperr.New(httperr.KindInvalidInput, "invalid_window", "Window start time must be before its end time.")
	ErrMissingAppointmentAt = httperr.New(httperr.KindInvalidInput, "missing_appointment_time", "Appointment time is required.")
	ErrNothingToUpdate      = httperr.New(httperr.KindInvalidInput, "nothing_to_update", "Provide appointment_time or service_id.")

	ErrOutsideWorkingHours    = httperr.New(httperr.KindOutsideWorkingHours, "outside_working_hours", "Appointment time is outside the barber's working hours.")
	ErrSlotAlreadyBooked      = httperr.New(httperr.KindSlotAlreadyBooked, "slot_already_booked", "This time slot is already booked.")
	ErrInvalidStateTransition = httperr.New(httperr.KindInvalidStateTransition, "invalid_state_transition", "Only scheduled appointments can be changed.")
)

// ErrBookingConflict is returned by repositories when the storage layer
// rejects a write on the (barber, appointment time) uniqueness rule.
var ErrBookingConflict = errors.New("appointment: storage rejected conflicting booking")
