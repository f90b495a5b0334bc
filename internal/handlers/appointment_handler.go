package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucappointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	availability *ucappointment.GetAvailability
	create       *ucappointment.CreateAppointment
	update       *ucappointment.UpdateAppointment
	status       *ucappointment.UpdateAppointmentStatus
	cancel       *ucappointment.CancelAppointment
	get          *ucappointment.GetAppointment
	list         *ucappointment.ListAppointments

	lookup access.BarberLookup
	loc    *time.Location
	log    *zap.Logger
}

func NewAppointmentHandler(d ucappointment.Deps) *AppointmentHandler {
	loc := d.Loc
	if loc == nil {
		loc = time.UTC
	}
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	return &AppointmentHandler{
		availability: ucappointment.NewGetAvailability(d),
		create:       ucappointment.NewCreateAppointment(d),
		update:       ucappointment.NewUpdateAppointment(d),
		status:       ucappointment.NewUpdateAppointmentStatus(d),
		cancel:       ucappointment.NewCancelAppointment(d),
		get:          ucappointment.NewGetAppointment(d),
		list:         ucappointment.NewListAppointments(d),
		lookup:       d.Repo,
		loc:          loc,
		log:          log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID        uint      `json:"barber_id" binding:"required"`
	ServiceID       uint      `json:"service_id" binding:"required"`
	AppointmentTime time.Time `json:"appointment_time" binding:"required"`
}

type UpdateAppointmentRequest struct {
	AppointmentTime *time.Time `json:"appointment_time"`
	ServiceID       *uint      `json:"service_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// AVAILABLE SLOTS (public)
// ======================================================

func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	barberID, ok := parseOptionalUint(c.Query("barber_id"))
	if !ok || barberID == nil {
		httperr.BadRequest(c, "invalid_barber_id", "barber_id is required.")
		return
	}

	date, ok := parseCalendarDate(c.Query("date"), h.loc)
	if !ok {
		httperr.BadRequest(c, "invalid_date", "date must use the YYYY-MM-DD format.")
		return
	}

	serviceID, ok := parseOptionalUint(c.Query("service_id"))
	if !ok {
		httperr.BadRequest(c, "invalid_service_id", "service_id must be a positive integer.")
		return
	}

	res, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID:  *barberID,
		Date:      date,
		ServiceID: serviceID,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	body := gin.H{
		"barber_id":        res.BarberID,
		"date":             res.Date.Format("2006-01-02"),
		"service_id":       res.ServiceID,
		"duration_minutes": res.DurationMinutes,
		"available_slots":  formatSlots(res.Slots, h.loc),
	}
	if res.Closed {
		body["message"] = "Barber is not available on this day"
	}

	c.JSON(http.StatusOK, body)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	caller, ok := callerFrom(c, h.lookup, h.log)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "barber_id, service_id and appointment_time (RFC 3339) are required.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), caller, ucappointment.CreateAppointmentInput{
		BarberID:        req.BarberID,
		ServiceID:       req.ServiceID,
		AppointmentTime: req.AppointmentTime,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	caller, ok := callerFrom(c, h.lookup, h.log)
	if !ok {
		return
	}

	barberID, ok := parseOptionalUint(c.Query("barber_id"))
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "barber_id must be a positive integer.")
		return
	}

	items, err := h.list.Execute(c.Request.Context(), caller, ucappointment.ListAppointmentsInput{
		BarberID: barberID,
		Status:   c.Query("status"),
		Date:     c.Query("date"),
		Month:    c.Query("month"),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	caller, ok := callerFrom(c, h.lookup, h.log)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), caller, id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// UPDATE / STATUS / CANCEL
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	caller, ok := callerFrom(c, h.lookup, h.log)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), caller, id, ucappointment.UpdateAppointmentInput{
		AppointmentTime: req.AppointmentTime,
		ServiceID:       req.ServiceID,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	caller, ok := callerFrom(c, h.lookup, h.log)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "status is required.")
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), caller, id, req.Status)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	caller, ok := callerFrom(c, h.lookup, h.log)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), caller, id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, ap)
}
