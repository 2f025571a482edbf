package therapist

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/counsel/counsel/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/therapists", h.List)
	api.GET("/therapists/:id", h.Get)

	admin := api.Group("", auth.RequireRole(auth.RoleSecretary))
	admin.POST("/therapists", h.Create)
	admin.POST("/therapists/:id/deactivate", h.Deactivate)
}

func (h *Handler) Create(c echo.Context) error {
	var t Therapist
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t.ID = uuid.Nil
	t.Active = true
	if err := h.svc.Create(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    t,
	})
}

func (h *Handler) Deactivate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Deactivate(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "therapist not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "therapist deactivated",
	})
}

func (h *Handler) List(c echo.Context) error {
	category := c.QueryParam("category")
	items, err := h.svc.ListActive(c.Request().Context(), category)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list therapists")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    items,
	})
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	t, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "therapist not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    t,
	})
}
