package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCanceled, now)
}

func Complete(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCompleted, now)
}

func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	switch to {
	case StatusCanceled:
		ap.CanceledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return nil
}

// Occupied is the interval an appointment blocks on the barber's calendar.
func Occupied(start time.Time, durationMin int) Interval {
	return Interval{Start: start, End: start.Add(time.Duration(durationMin) * time.Minute)}
}
