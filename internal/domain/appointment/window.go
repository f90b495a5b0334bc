package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ValidateWindows checks a full replacement batch and returns it normalized
// to HH:MM for the given barber. Any invalid row rejects the whole batch.
func ValidateWindows(barberID uint, in []models.AvailabilityWindow) ([]models.AvailabilityWindow, error) {
	out := make([]models.AvailabilityWindow, 0, len(in))

	for _, w := range in {
		if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
			return nil, ErrInvalidDayOfWeek
		}

		start, err := ParseClock(w.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := ParseClock(w.EndTime)
		if err != nil {
			return nil, err
		}
		if start >= end {
			return nil, ErrWindowOrder
		}

		out = append(out, models.AvailabilityWindow{
			BarberID:  barberID,
			DayOfWeek: w.DayOfWeek,
			StartTime: FormatClock(start),
			EndTime:   FormatClock(end),
		})
	}

	return out, nil
}

// OpenIntervals turns the windows stored for date's weekday into absolute
// instants on that date and merges overlapping or touching windows.
func OpenIntervals(date time.Time, windows []models.AvailabilityWindow, loc *time.Location) []Interval {
	weekday := int(date.In(loc).Weekday())

	var ivs []Interval
	for _, w := range windows {
		if w.DayOfWeek != weekday {
			continue
		}
		start, err := ParseClock(w.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(w.EndTime)
		if err != nil || start >= end {
			continue
		}
		ivs = append(ivs, Interval{Start: At(date, start, loc), End: At(date, end, loc)})
	}

	return Merge(ivs)
}

// FitsWindow reports whether [start, start+duration) lies inside one of the
// open intervals.
func FitsWindow(open []Interval, start time.Time, duration time.Duration) bool {
	want := Interval{Start: start, End: start.Add(duration)}
	for _, iv := range open {
		if iv.Contains(want) {
			return true
		}
	}
	return false
}
