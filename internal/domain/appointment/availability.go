package appointment

import "time"

type AvailabilityInput struct {
	BarberID  uint
	Date      time.Time
	ServiceID *uint
}

type AvailabilityResult struct {
	BarberID        uint
	Date            time.Time
	ServiceID       *uint
	DurationMinutes int
	Slots           []time.Time
	// Closed is set when the barber has no window on that weekday.
	Closed bool
}
