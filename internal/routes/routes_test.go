package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil/memstore"
)

const testSecret = "router-test-secret-0123456789"

type harness struct {
	router *gin.Engine
	store  *memstore.Store
	barber models.Barber
	svc    models.Service
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	branch := store.AddBranch(models.Branch{BarbershopID: 1, Name: "Centro"})
	barber := store.AddBarber(models.Barber{UserID: 20, BranchID: branch.ID, IsActive: true})
	svc := store.AddService(models.Service{BarbershopID: 1, Name: "Corte", Duration: 30, IsActive: true})
	// Mondays 09:00-12:00
	store.AddWindow(models.AvailabilityWindow{BarberID: barber.ID, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"})

	r := NewRouter(Dependencies{
		Config:  &config.Config{JWTSecret: testSecret, JWTTTL: time.Hour},
		Repo:    store,
		Tx:      store,
		Cache:   cache.NoopCache{},
		Metrics: metrics.New("router_test"),
		Log:     zap.NewNop(),
		Loc:     time.UTC,
	})

	return &harness{router: r, store: store, barber: barber, svc: svc}
}

func token(t *testing.T, userID uint, role string) string {
	t.Helper()
	tok, err := handlers.GenerateToken(testSecret, time.Hour, userID, role)
	require.NoError(t, err)
	return tok
}

func (h *harness) do(t *testing.T, method, path, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (h *harness) bookBody(hour, minute int) gin.H {
	return gin.H{
		"barber_id":        h.barber.ID,
		"service_id":       h.svc.ID,
		"appointment_time": time.Date(2024, 6, 3, hour, minute, 0, 0, time.UTC).Format(time.RFC3339),
	}
}

// ======================================================
// PUBLIC
// ======================================================

func TestHealth(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAvailableSlots_OpenDay(t *testing.T) {
	h := newHarness(t)

	path := fmt.Sprintf("/api/v1/appointments/available-slots?barber_id=%d&date=2024-06-03&service_id=%d", h.barber.ID, h.svc.ID)
	w := h.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	slots := body["available_slots"].([]any)
	require.Len(t, slots, 6)
	assert.Equal(t, "2024-06-03T09:00:00Z", slots[0])
	assert.Equal(t, "2024-06-03T11:30:00Z", slots[5])
	assert.Equal(t, "2024-06-03", body["date"])
	assert.NotContains(t, body, "message")
}

func TestAvailableSlots_ClosedDay(t *testing.T) {
	h := newHarness(t)

	// 2024-06-02 is a Sunday.
	path := fmt.Sprintf("/api/v1/appointments/available-slots?barber_id=%d&date=2024-06-02", h.barber.ID)
	w := h.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, []any{}, body["available_slots"])
	assert.Equal(t, "Barber is not available on this day", body["message"])
}

func TestAvailableSlots_BadQuery(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodGet, "/api/v1/appointments/available-slots?date=2024-06-03", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, http.MethodGet, fmt.Sprintf("/api/v1/appointments/available-slots?barber_id=%d&date=03/06/2024", h.barber.ID), "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, http.MethodGet, "/api/v1/appointments/available-slots?barber_id=999&date=2024-06-03", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "barber_not_found", decode(t, w)["error_code"])
}

// ======================================================
// BOOKING
// ======================================================

func TestCreateAppointment_Flow(t *testing.T) {
	h := newHarness(t)
	customer := token(t, 100, models.RoleCustomer)
	rival := token(t, 101, models.RoleCustomer)

	w := h.do(t, http.MethodPost, "/api/v1/appointments", customer, h.bookBody(10, 0))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "scheduled", created["status"])
	assert.EqualValues(t, 100, created["customer_id"])

	w = h.do(t, http.MethodPost, "/api/v1/appointments", rival, h.bookBody(10, 0))
	require.Equal(t, http.StatusConflict, w.Code)
	conflict := decode(t, w)
	assert.Equal(t, "slot_already_booked", conflict["kind"])

	w = h.do(t, http.MethodPost, "/api/v1/appointments", rival, h.bookBody(13, 0))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "outside_working_hours", decode(t, w)["kind"])

	path := fmt.Sprintf("/api/v1/appointments/available-slots?barber_id=%d&date=2024-06-03", h.barber.ID)
	slots := decode(t, h.do(t, http.MethodGet, path, "", nil))["available_slots"].([]any)
	assert.Len(t, slots, 5)
	assert.NotContains(t, slots, "2024-06-03T10:00:00Z")
}

func TestCreateAppointment_AuthAndRole(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodPost, "/api/v1/appointments", "", h.bookBody(10, 0))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(t, http.MethodPost, "/api/v1/appointments", "not-a-jwt", h.bookBody(10, 0))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	barber := token(t, 20, models.RoleBarber)
	w = h.do(t, http.MethodPost, "/api/v1/appointments", barber, h.bookBody(10, 0))
	assert.Equal(t, http.StatusForbidden, w.Code)

	customer := token(t, 100, models.RoleCustomer)
	w = h.do(t, http.MethodPost, "/api/v1/appointments", customer, gin.H{"barber_id": h.barber.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, h.store.Appointments())
}

func TestCancelAndStatus(t *testing.T) {
	h := newHarness(t)
	customer := token(t, 100, models.RoleCustomer)
	other := token(t, 101, models.RoleCustomer)
	barber := token(t, 20, models.RoleBarber)

	first := decode(t, h.do(t, http.MethodPost, "/api/v1/appointments", customer, h.bookBody(9, 0)))
	second := decode(t, h.do(t, http.MethodPost, "/api/v1/appointments", customer, h.bookBody(9, 30)))
	firstPath := fmt.Sprintf("/api/v1/appointments/%v", first["id"])
	secondPath := fmt.Sprintf("/api/v1/appointments/%v", second["id"])

	// another customer can neither see nor cancel it
	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodGet, firstPath, other, nil).Code)
	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodDelete, firstPath, other, nil).Code)

	w := h.do(t, http.MethodDelete, firstPath, customer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "canceled", decode(t, w)["status"])

	w = h.do(t, http.MethodDelete, firstPath, customer, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_state_transition", decode(t, w)["kind"])

	// customers cannot change status
	w = h.do(t, http.MethodPut, secondPath+"/status", customer, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = h.do(t, http.MethodPut, secondPath+"/status", barber, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "completed", decode(t, w)["status"])

	w = h.do(t, http.MethodPut, secondPath+"/status", barber, gin.H{"status": "canceled"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// the canceled slot is bookable again
	w = h.do(t, http.MethodPost, "/api/v1/appointments", other, h.bookBody(9, 0))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestListAppointments(t *testing.T) {
	h := newHarness(t)
	customer := token(t, 100, models.RoleCustomer)
	other := token(t, 101, models.RoleCustomer)

	require.Equal(t, http.StatusCreated, h.do(t, http.MethodPost, "/api/v1/appointments", customer, h.bookBody(9, 0)).Code)

	body := decode(t, h.do(t, http.MethodGet, "/api/v1/appointments", customer, nil))
	assert.EqualValues(t, 1, body["total"])

	body = decode(t, h.do(t, http.MethodGet, "/api/v1/appointments", other, nil))
	assert.EqualValues(t, 0, body["total"])
	assert.Equal(t, []any{}, body["data"])
}

// ======================================================
// AVAILABILITY WINDOWS
// ======================================================

func TestAvailabilityWindows(t *testing.T) {
	h := newHarness(t)
	path := fmt.Sprintf("/api/v1/barbers/%d/availability", h.barber.ID)

	w := h.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["windows"], 1)

	replacement := gin.H{"windows": []gin.H{
		{"day_of_week": 0, "start_time": "10:00", "end_time": "14:00"},
		{"day_of_week": 1, "start_time": "08:00", "end_time": "09:00"},
	}}

	customer := token(t, 100, models.RoleCustomer)
	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodPut, path, customer, replacement).Code)

	barber := token(t, 20, models.RoleBarber)
	w = h.do(t, http.MethodPut, path, barber, replacement)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode(t, w)["windows"], 2)

	bad := gin.H{"windows": []gin.H{
		{"day_of_week": 2, "start_time": "10:00", "end_time": "11:00"},
		{"day_of_week": 3, "start_time": "15:00", "end_time": "14:00"},
	}}
	w = h.do(t, http.MethodPut, path, barber, bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	badDay := gin.H{"windows": []gin.H{
		{"day_of_week": 2, "start_time": "10:00", "end_time": "11:00"},
		{"day_of_week": 9, "start_time": "10:00", "end_time": "11:00"},
	}}
	w = h.do(t, http.MethodPut, path, barber, badDay)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_day_of_week", decode(t, w)["error_code"])

	// the rejected batch left the previous set untouched
	w = h.do(t, http.MethodGet, path, "", nil)
	assert.Len(t, decode(t, w)["windows"], 2)

	slotsPath := fmt.Sprintf("/api/v1/appointments/available-slots?barber_id=%d&date=2024-06-03", h.barber.ID)
	slots := decode(t, h.do(t, http.MethodGet, slotsPath, "", nil))["available_slots"].([]any)
	assert.Equal(t, []any{"2024-06-03T08:00:00Z", "2024-06-03T08:30:00Z"}, slots)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHarness(t)
	h.do(t, http.MethodGet, "/health", "", nil)

	w := h.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "router_test_http_request_duration_seconds")
}

func TestAvailabilityWindows_SingleDay(t *testing.T) {
	h := newHarness(t)
	path := fmt.Sprintf("/api/v1/barbers/%d/availability", h.barber.ID)

	w := h.do(t, http.MethodGet, path+"?day_of_week=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	windows := decode(t, w)["windows"].([]any)
	require.Len(t, windows, 1)
	assert.Equal(t, "09:00", windows[0].(map[string]any)["start_time"])

	w = h.do(t, http.MethodGet, path+"?day_of_week=0", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, decode(t, w)["windows"])

	w = h.do(t, http.MethodGet, path+"?day_of_week=7", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_day_of_week", decode(t, w)["error_code"])

	w = h.do(t, http.MethodGet, path+"?day_of_week=monday", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, http.MethodGet, "/api/v1/barbers/999/availability?day_of_week=1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
