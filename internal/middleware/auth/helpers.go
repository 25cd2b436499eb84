package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/techstore-lab/techstore/internal/service/token"
)

const identityKey = "identity"

// SetIdentity stores the resolved identity for downstream handlers.
func SetIdentity(c echo.Context, ident *token.Identity) {
	c.Set(identityKey, ident)
}

// IdentityFrom returns the identity RequireLogin stored on the context,
// or nil on unprotected routes.
func IdentityFrom(c echo.Context) *token.Identity {
	if v, ok := c.Get(identityKey).(*token.Identity); ok {
		return v
	}
	return nil
}

// wantsHTML mirrors the channel split in the error contract: clients
// whose Accept header admits HTML are treated as browsers.
func wantsHTML(c echo.Context) bool {
	accept := c.Request().Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*")
}
