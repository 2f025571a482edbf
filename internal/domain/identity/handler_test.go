package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

type mockStudentRepo struct {
	students map[uuid.UUID]*Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[uuid.UUID]*Student)}
}

func (m *mockStudentRepo) GetByID(_ context.Context, id uuid.UUID) (*Student, error) {
	s, ok := m.students[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return s, nil
}

func (m *mockStudentRepo) GetByStudentNumber(_ context.Context, number string) (*Student, error) {
	for _, s := range m.students {
		if s.StudentNumber == number {
			return s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func TestHandler_GetByNumber(t *testing.T) {
	repo := newMockStudentRepo()
	student := &Student{ID: uuid.New(), StudentNumber: "20260101", FirstName: "Ayşe", LastName: "Yılmaz"}
	repo.students[student.ID] = student

	h := NewHandler(repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("number")
	c.SetParamValues("20260101")

	if err := h.GetByNumber(c); err != nil {
		t.Fatalf("GetByNumber() error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success bool    `json:"success"`
		Data    Student `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success || resp.Data.FirstName != "Ayşe" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h := NewHandler(newMockStudentRepo())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.Get(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
