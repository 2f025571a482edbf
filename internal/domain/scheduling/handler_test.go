package scheduling

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/counsel/counsel/internal/platform/auth"
)

func newTestHandler(env *testEnv) (*Handler, *echo.Echo) {
	return NewHandler(env.svc), echo.New()
}

func doJSON(e *echo.Echo, method, target, body string, roles []string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if roles != nil {
		req = req.WithContext(context.WithValue(req.Context(), auth.UserRolesKey, roles))
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHandler_CreateAppointment(t *testing.T) {
	env := newTestEnv()
	h, e := newTestHandler(env)
	h.RegisterRoutes(e.Group("/api/v1"))

	body := `{"session_id":"` + env.session.ID.String() + `","therapist_id":"` + env.therapist.ID.String() +
		`","date":"2026-02-03","hour":"10:00","type":"online","location_or_link":"https://meet.example.edu/x"}`
	rec := doJSON(e, http.MethodPost, "/api/v1/appointments", body, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	env2 := decodeEnvelope(t, rec)
	if env2["success"] != true {
		t.Errorf("expected success envelope, got %v", env2)
	}
}

func TestHandler_CreateAppointment_Conflict(t *testing.T) {
	env := newTestEnv()
	h, e := newTestHandler(env)
	h.RegisterRoutes(e.Group("/api/v1"))

	body := `{"session_id":"` + env.session.ID.String() + `","therapist_id":"` + env.therapist.ID.String() +
		`","date":"2026-02-03","hour":"10:00","type":"in-person","location_or_link":"Room B204"}`
	if rec := doJSON(e, http.MethodPost, "/api/v1/appointments", body, nil); rec.Code != http.StatusCreated {
		t.Fatalf("first booking: %d", rec.Code)
	}
	rec := doJSON(e, http.MethodPost, "/api/v1/appointments", body, nil)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	out := decodeEnvelope(t, rec)
	if out["success"] != false {
		t.Errorf("expected failure envelope, got %v", out)
	}
	if msg, _ := out["message"].(string); !strings.Contains(msg, "slot no longer available") {
		t.Errorf("unexpected message %q", out["message"])
	}
}

func TestHandler_AvailableHours(t *testing.T) {
	env := newTestEnv()
	h, e := newTestHandler(env)
	h.RegisterRoutes(e.Group("/api/v1"))

	rec := doJSON(e, http.MethodGet, "/api/v1/therapists/"+env.therapist.ID.String()+"/available-hours?date=2026-02-03", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	out := decodeEnvelope(t, rec)
	data, ok := out["data"].([]interface{})
	if !ok || len(data) != len(WorkingHours) {
		t.Errorf("expected full hour grid, got %v", out["data"])
	}
}

func TestHandler_UpdateStatus(t *testing.T) {
	env := newTestEnv()
	h, e := newTestHandler(env)
	h.RegisterRoutes(e.Group("/api/v1"))

	appt, err := env.svc.CreateAppointment(context.Background(), env.createInput("2026-02-03", "10:00"))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	rec := doJSON(e, http.MethodPost, "/api/v1/appointments/"+appt.ID.String()+"/status",
		`{"status":"cancelled","reason":"illness"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/api/v1/appointments/"+appt.ID.String()+"/status",
		`{"status":"completed"}`, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for terminal re-transition, got %d", rec.Code)
	}
}

func TestHandler_SessionAppointments_StaffOnly(t *testing.T) {
	env := newTestEnv()
	h, e := newTestHandler(env)
	h.RegisterRoutes(e.Group("/api/v1"))

	if _, err := env.svc.CreateAppointment(context.Background(), env.createInput("2026-02-03", "10:00")); err != nil {
		t.Fatalf("booking: %v", err)
	}
	target := "/api/v1/sessions/" + env.session.ID.String() + "/appointments"

	rec := doJSON(e, http.MethodGet, target, "", []string{auth.RoleStudent})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, target, "", []string{auth.RoleTherapist})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for therapist, got %d: %s", rec.Code, rec.Body.String())
	}
	out := decodeEnvelope(t, rec)
	if data, ok := out["data"].([]interface{}); !ok || len(data) != 1 {
		t.Errorf("expected one appointment in session history, got %v", out["data"])
	}
}

func TestHandler_TherapistDay(t *testing.T) {
	env := newTestEnv()
	h, e := newTestHandler(env)
	h.RegisterRoutes(e.Group("/api/v1"))

	if _, err := env.svc.CreateAppointment(context.Background(), env.createInput("2026-02-03", "09:00")); err != nil {
		t.Fatalf("booking: %v", err)
	}

	rec := doJSON(e, http.MethodGet,
		"/api/v1/therapists/"+env.therapist.ID.String()+"/appointments?date=2026-02-03", "", []string{auth.RoleSecretary})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	out := decodeEnvelope(t, rec)
	if data, ok := out["data"].([]interface{}); !ok || len(data) != 1 {
		t.Errorf("expected one appointment for the day, got %v", out["data"])
	}
}

func TestHandler_AddHoliday_RoleGuard(t *testing.T) {
	env := newTestEnv()
	h, e := newTestHandler(env)
	h.RegisterRoutes(e.Group("/api/v1"))

	body := `{"date":"2026-02-10","description":"exam week"}`

	rec := doJSON(e, http.MethodPost, "/api/v1/holidays", body, []string{auth.RoleStudent})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/v1/holidays", body, []string{auth.RoleSecretary})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for secretary, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/api/v1/holidays", body, []string{auth.RoleAdmin})
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 duplicate for admin retry, got %d", rec.Code)
	}
}

func TestHandler_Holidays_ListAndDelete(t *testing.T) {
	env := newTestEnv()
	h, e := newTestHandler(env)
	h.RegisterRoutes(e.Group("/api/v1"))

	rec := doJSON(e, http.MethodPost, "/api/v1/holidays", `{"date":"2026-02-10"}`, []string{auth.RoleAdmin})
	if rec.Code != http.StatusCreated {
		t.Fatalf("declaring holiday: %d", rec.Code)
	}
	var created struct {
		Data CustomHoliday `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding: %v", err)
	}

	rec = doJSON(e, http.MethodGet, "/api/v1/holidays", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("listing holidays: %d", rec.Code)
	}
	out := decodeEnvelope(t, rec)
	if data, ok := out["data"].([]interface{}); !ok || len(data) != 1 {
		t.Errorf("expected one holiday, got %v", out["data"])
	}

	rec = doJSON(e, http.MethodDelete, "/api/v1/holidays/"+created.Data.ID.String(), "", []string{auth.RoleSecretary})
	if rec.Code != http.StatusOK {
		t.Fatalf("deleting holiday: %d: %s", rec.Code, rec.Body.String())
	}
}
