package appointment

import (
	"fmt"
	"time"
)

// ParseClock converts an "HH:MM" time of day into minutes after midnight.
// "HH:MM:SS" is accepted only with zero seconds; windows have minute
// precision.
func ParseClock(s string) (int, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Second() != 0 {
				return 0, ErrInvalidTimeOfDay
			}
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, ErrInvalidTimeOfDay
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// At places a time of day on the calendar day of date, in loc.
func At(date time.Time, minutes int, loc *time.Location) time.Time {
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), minutes/60, minutes%60, 0, 0, loc)
}
