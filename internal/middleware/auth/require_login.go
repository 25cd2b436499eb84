package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techstore-lab/techstore/internal/service/token"
)

type Middleware struct {
	Tokens *token.Service
}

// RequireLogin resolves the caller's identity from the bearer header or
// the session cookie and fails closed when neither verifies. Browser
// clients are sent to the login page, API clients get a JSON 401.
func (m *Middleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := token.FromRequest(c)
		if !ok {
			return unauthenticated(c)
		}

		ident, err := m.Tokens.Identity(raw)
		if err != nil {
			return unauthenticated(c)
		}

		SetIdentity(c, ident)
		return next(c)
	}
}

func unauthenticated(c echo.Context) error {
	if wantsHTML(c) {
		return c.Redirect(http.StatusFound, "/login")
	}
	return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authentication required"})
}
