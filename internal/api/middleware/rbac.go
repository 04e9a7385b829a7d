package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pipeboard/roster-console/internal/core/domain"
)

// RequireRoles rejects requests whose authenticated role is not in the
// allowed set. It complements, but never replaces, the permission checks in
// the user service: a route added without this middleware still cannot
// bypass the service-level guard.
func RequireRoles(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
