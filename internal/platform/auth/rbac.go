package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Role names carried in JWT claims. Numeric codes used in persistence map
// to these names one-to-one.
const (
	RoleAdmin     = "admin"
	RoleSecretary = "secretary"
	RoleTherapist = "therapist"
	RoleStudent   = "student"
)

// RequireRole returns middleware that checks whether the caller holds at
// least one of the given roles. Admins pass every role check.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRoles := RolesFromContext(c.Request().Context())
			for _, required := range roles {
				for _, has := range userRoles {
					if has == required || has == RoleAdmin {
						return next(c)
					}
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}

// HasAnyRole reports whether any of the caller's roles is in the given set.
// Services use this for checks that do not sit on a route boundary.
func HasAnyRole(userRoles []string, roles ...string) bool {
	for _, required := range roles {
		for _, has := range userRoles {
			if has == required || has == RoleAdmin {
				return true
			}
		}
	}
	return false
}
