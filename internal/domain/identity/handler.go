package identity

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/counsel/counsel/internal/platform/auth"
)

// Handler exposes staff-facing student lookups. Account management is
// out of this service's hands; these are read endpoints for intake.
type Handler struct {
	students StudentRepository
}

func NewHandler(students StudentRepository) *Handler {
	return &Handler{students: students}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	staff := api.Group("", auth.RequireRole(auth.RoleSecretary, auth.RoleTherapist))
	staff.GET("/students/:id", h.Get)
	staff.GET("/students/by-number/:number", h.GetByNumber)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	student, err := h.students.GetByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "student not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    student,
	})
}

func (h *Handler) GetByNumber(c echo.Context) error {
	student, err := h.students.GetByStudentNumber(c.Request().Context(), c.Param("number"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "student not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    student,
	})
}
