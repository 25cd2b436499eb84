package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/techstore-lab/techstore/internal/events"
	"github.com/techstore-lab/techstore/internal/hash"
	"github.com/techstore-lab/techstore/internal/logging"
	authmw "github.com/techstore-lab/techstore/internal/middleware/auth"
	"github.com/techstore-lab/techstore/internal/models"
	"github.com/techstore-lab/techstore/internal/service/token"
)

type AuthHandler struct {
	DB       *gorm.DB
	Tokens   *token.Service
	Producer *events.Producer
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
		}
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}

	signed, exp, err := h.Tokens.Issue(&user)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	c.SetCookie(token.CreateCookie(signed, exp))
	l.Info("login_successful", "username", user.Username)

	publishEvent(c, h.Producer, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Login successful",
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	})
}

func (h *AuthHandler) LogOut(c echo.Context) error {
	c.SetCookie(token.DeleteCookie())
	return c.JSON(http.StatusOK, echo.Map{"message": "Logout successful"})
}

// Status echoes the identity carried by the session token.
func (h *AuthHandler) Status(c echo.Context) error {
	ident := authmw.IdentityFrom(c)
	if ident == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	return c.JSON(http.StatusOK, ident)
}

// ChangePassword rehashes and reissues a session token. The lab keeps
// the relaxed flow: the current password is never asked for.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_change_password")

	ident := authmw.IdentityFrom(c)
	if ident == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "New password is required")
	}
	if req.NewPassword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "New password is required")
	}
	if len(req.NewPassword) < 8 {
		return echo.NewHTTPError(http.StatusBadRequest, "New password must be at least 8 characters")
	}

	var user models.User
	if err := h.DB.First(&user, ident.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		l.Error("change_password_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	pwHash, err := hash.HashPassword(req.NewPassword)
	if err != nil {
		l.Error("change_password_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	if err := h.DB.Model(&user).Update("password", pwHash).Error; err != nil {
		l.Error("change_password_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	signed, exp, err := h.Tokens.Issue(&user)
	if err != nil {
		l.Error("change_password_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	c.SetCookie(token.CreateCookie(signed, exp))

	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated successfully"})
}
