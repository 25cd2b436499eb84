package token

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/techstore-lab/techstore/internal/models"
)

// CookieName carries the session token; the lab keeps it readable in
// the browser on purpose.
const CookieName = "techstore-auth-token"

const TokenTTL = 24 * time.Hour

// AdminUsername is the sole admin designation rule: the flag is derived
// from the username at token issue time, never stored on the user row.
const AdminUsername = "admin"

var ErrUnauthenticated = errors.New("unauthenticated")

type SessionClaims struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	IsAdmin   bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Identity is what a validated session token resolves to.
type Identity struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	IsAdmin   bool   `json:"isAdmin"`
}

type Service struct {
	Secret []byte
}

// Issue signs a fresh 24h session token for the user.
func (s *Service) Issue(user *models.User) (string, time.Time, error) {
	exp := time.Now().Add(TokenTTL)
	claims := SessionClaims{
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		IsAdmin:   user.Username == AdminUsername,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.NewString(),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Identity verifies signature and expiry. Every verification failure,
// whatever its cause, maps to ErrUnauthenticated.
func (s *Service) Identity(raw string) (*Identity, error) {
	t, err := jwt.ParseWithClaims(raw, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrUnauthenticated
	}

	claims, ok := t.Claims.(*SessionClaims)
	if !ok {
		return nil, ErrUnauthenticated
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	return &Identity{
		ID:        uint(id),
		Username:  claims.Username,
		Email:     claims.Email,
		CreatedAt: claims.CreatedAt,
		IsAdmin:   claims.IsAdmin,
	}, nil
}

// FromRequest extracts the raw token, preferring the Authorization
// bearer header over the session cookie when both are present.
func FromRequest(c echo.Context) (string, bool) {
	const prefix = "Bearer "
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):], true
	}
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	return "", false
}

func CreateCookie(value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		MaxAge:   int(TokenTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func DeleteCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
