package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly composes on RequireLogin: identity first, then the isAdmin
// flag. Authenticated non-admins get a 403, not a login redirect.
func (m *Middleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireLogin(func(c echo.Context) error {
		ident := IdentityFrom(c)
		if ident == nil || !ident.IsAdmin {
			if wantsHTML(c) {
				return c.String(http.StatusForbidden, "Admin access required")
			}
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Admin privileges required"})
		}
		return next(c)
	})
}
