package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucavailability "github.com/BruksfildServices01/barber-booking/internal/usecase/availability"
)

type AvailabilityHandler struct {
	set    *ucavailability.SetWindows
	list   *ucavailability.ListWindows
	lookup access.BarberLookup
	log    *zap.Logger
}

func NewAvailabilityHandler(
	set *ucavailability.SetWindows,
	list *ucavailability.ListWindows,
	lookup access.BarberLookup,
	log *zap.Logger,
) *AvailabilityHandler {
	return &AvailabilityHandler{set: set, list: list, lookup: lookup, log: log}
}

type WindowRequest struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type SetWindowsRequest struct {
	Windows []WindowRequest `json:"windows" binding:"required,dive"`
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	barberID, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "Invalid barber id.")
		return
	}

	var (
		windows []models.AvailabilityWindow
		err     error
	)

	// ?day_of_week=N narrows the result to one weekday
	if raw, set := c.GetQuery("day_of_week"); set {
		day, convErr := strconv.Atoi(raw)
		if convErr != nil {
			httperr.BadRequest(c, "invalid_day_of_week", "day_of_week must be an integer between 0 and 6.")
			return
		}
		windows, err = h.list.WindowsForDay(c.Request.Context(), barberID, day)
	} else {
		windows, err = h.list.Execute(c.Request.Context(), barberID)
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barber_id": barberID,
		"windows":   windows,
	})
}

// Update replaces the whole weekly set. An empty list closes every day.
func (h *AvailabilityHandler) Update(c *gin.Context) {
	caller, ok := callerFrom(c, h.lookup, h.log)
	if !ok {
		return
	}
	barberID, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "Invalid barber id.")
		return
	}

	var req SetWindowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Each window needs day_of_week, start_time and end_time.")
		return
	}

	in := make([]models.AvailabilityWindow, 0, len(req.Windows))
	for _, w := range req.Windows {
		in = append(in, models.AvailabilityWindow{
			DayOfWeek: *w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}

	saved, err := h.set.Execute(c.Request.Context(), caller, barberID, in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if saved == nil {
		saved = []models.AvailabilityWindow{}
	}

	c.JSON(http.StatusOK, gin.H{
		"barber_id": barberID,
		"windows":   saved,
	})
}
