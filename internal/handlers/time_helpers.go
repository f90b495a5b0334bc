package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// --------------------------------------------------
// Request parsing helpers
// --------------------------------------------------

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parseOptionalUint(raw string) (*uint, bool) {
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return nil, false
	}
	id := uint(v)
	return &id, true
}

// parseCalendarDate reads a YYYY-MM-DD date as local midnight in loc.
func parseCalendarDate(raw string, loc *time.Location) (time.Time, bool) {
	d, err := timezone.ParseDate(raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func formatSlots(slots []time.Time, loc *time.Location) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.In(loc).Format(time.RFC3339))
	}
	return out
}
