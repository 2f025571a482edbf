package scheduling

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/counsel/counsel/internal/domain/identity"
	"github.com/counsel/counsel/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/therapists/available", h.ListAvailableTherapists)
	api.GET("/therapists/:id/available-hours", h.AvailableHours)

	api.POST("/appointments", h.Create)
	api.GET("/appointments/:id", h.Get)
	api.POST("/appointments/:id/status", h.UpdateStatus)

	staff := api.Group("", auth.RequireRole(auth.RoleSecretary, auth.RoleTherapist))
	staff.GET("/therapists/:id/appointments", h.ListTherapistDay)
	staff.GET("/sessions/:id/appointments", h.ListSessionAppointments)

	admin := api.Group("", auth.RequireRole(auth.RoleSecretary))
	admin.POST("/holidays", h.AddHoliday)
	admin.DELETE("/holidays/:id", h.DeleteHoliday)
	api.GET("/holidays", h.ListHolidays)
}

// roleFromRequest maps the authenticated role names back to the
// privilege codes the service checks against. The most privileged role
// wins when an account carries several.
func roleFromRequest(c echo.Context) identity.Role {
	roles := auth.RolesFromContext(c.Request().Context())
	best := identity.Role(0)
	for _, name := range roles {
		r := identity.RoleFromName(name)
		if r == 0 {
			continue
		}
		if best == 0 || r < best {
			best = r
		}
	}
	return best
}

func failJSON(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch KindOf(err) {
	case KindInvalid:
		status = http.StatusBadRequest
	case KindUnauthorized:
		status = http.StatusForbidden
	case KindNotFound:
		status = http.StatusNotFound
	case KindConflict:
		status = http.StatusConflict
	}
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"message": err.Error(),
	})
}

func (h *Handler) Create(c echo.Context) error {
	var req CreateAppointmentInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	appt, err := h.svc.CreateAppointment(c.Request().Context(), req)
	if err != nil {
		return failJSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    appt,
	})
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	appt, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return failJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    appt,
	})
}

type updateStatusRequest struct {
	Status              string `json:"status"`
	Reason              string `json:"reason"`
	TherapistNotes      string `json:"therapist_notes"`
	RiskLevel           string `json:"risk_level"`
	ReferralDestination string `json:"referral_destination"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	appt, err := h.svc.UpdateStatus(c.Request().Context(), id, UpdateStatusInput{
		Status:              StatusFromName(req.Status),
		Reason:              req.Reason,
		TherapistNotes:      req.TherapistNotes,
		RiskLevel:           req.RiskLevel,
		ReferralDestination: req.ReferralDestination,
	})
	if err != nil {
		return failJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    appt,
	})
}

func (h *Handler) AvailableHours(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	hours, err := h.svc.AvailableHours(c.Request().Context(), id, c.QueryParam("date"))
	if err != nil {
		return failJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    hours,
	})
}

func (h *Handler) ListTherapistDay(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	items, err := h.svc.ListTherapistDay(c.Request().Context(), id, c.QueryParam("date"))
	if err != nil {
		return failJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    items,
	})
}

func (h *Handler) ListSessionAppointments(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	items, err := h.svc.ListSessionAppointments(c.Request().Context(), id)
	if err != nil {
		return failJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    items,
	})
}

func (h *Handler) ListAvailableTherapists(c echo.Context) error {
	items, err := h.svc.ListAvailableTherapists(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return failJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    items,
	})
}

type addHolidayRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (h *Handler) AddHoliday(c echo.Context) error {
	var req addHolidayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	holiday, err := h.svc.AddCustomHoliday(c.Request().Context(), req.Date, req.Description, roleFromRequest(c))
	if err != nil {
		return failJSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    holiday,
	})
}

func (h *Handler) ListHolidays(c echo.Context) error {
	items, err := h.svc.ListCustomHolidays(c.Request().Context())
	if err != nil {
		return failJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    items,
	})
}

func (h *Handler) DeleteHoliday(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteCustomHoliday(c.Request().Context(), id, roleFromRequest(c)); err != nil {
		return failJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "holiday removed",
	})
}
