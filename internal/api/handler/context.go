package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pipeboard/roster-console/internal/api/middleware"
	"github.com/pipeboard/roster-console/internal/core/domain"
)

// ctxIdentity extracts the operator identity injected by the Auth middleware
// and fast-fails before any service call: a known role proves the middleware
// ran and the token carried a usable identity.
func ctxIdentity(c echo.Context) (id, name string, role domain.Role, err error) {
	roleStr, _ := c.Get(middleware.CtxRole).(string)
	role = domain.Role(roleStr)
	if !role.Valid() {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	id, _ = c.Get(middleware.CtxUserID).(string)
	name, _ = c.Get(middleware.CtxName).(string)
	return id, name, role, nil
}
