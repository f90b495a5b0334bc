package appointment

import "time"

const (
	SlotGranularity        = 30 * time.Minute
	DefaultServiceDuration = 30 * time.Minute
)

// GenerateSlots walks each open interval from its start in step increments
// and keeps every candidate whose [c, c+duration) fits the interval and
// overlaps no busy interval. open must be sorted and disjoint (see Merge);
// the result is then ascending.
func GenerateSlots(open []Interval, busy []Interval, duration, step time.Duration) []time.Time {
	slots := make([]time.Time, 0)
	if duration <= 0 || step <= 0 {
		return slots
	}

	for _, w := range open {
		for cur := w.Start; !cur.Add(duration).After(w.End); cur = cur.Add(step) {
			if overlapsAny(Interval{Start: cur, End: cur.Add(duration)}, busy) {
				continue
			}
			slots = append(slots, cur)
		}
	}

	return slots
}
