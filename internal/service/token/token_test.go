package token

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/techstore-lab/techstore/internal/models"
)

func testUser(username string) *models.User {
	return &models.User{
		ID:        42,
		Username:  username,
		Email:     username + "@techstore.com",
		CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestIssueAndIdentity(t *testing.T) {
	svc := &Service{Secret: []byte("test_secret")}

	signed, exp, err := svc.Issue(testUser("user1"))
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	require.WithinDuration(t, time.Now().Add(TokenTTL), exp, time.Minute)

	ident, err := svc.Identity(signed)
	require.NoError(t, err)
	require.EqualValues(t, 42, ident.ID)
	require.Equal(t, "user1", ident.Username)
	require.Equal(t, "user1@techstore.com", ident.Email)
	require.Equal(t, "2024-01-15T10:30:00Z", ident.CreatedAt)
	require.False(t, ident.IsAdmin)
}

func TestAdminFlagOnlyForAdminUsername(t *testing.T) {
	svc := &Service{Secret: []byte("test_secret")}

	for _, username := range []string{"demo", "user1", "Admin", "administrator"} {
		signed, _, err := svc.Issue(testUser(username))
		require.NoError(t, err)
		ident, err := svc.Identity(signed)
		require.NoError(t, err)
		require.False(t, ident.IsAdmin, "username %q must not be admin", username)
	}

	signed, _, err := svc.Issue(testUser("admin"))
	require.NoError(t, err)
	ident, err := svc.Identity(signed)
	require.NoError(t, err)
	require.True(t, ident.IsAdmin)
}

func TestIdentityFailsClosed(t *testing.T) {
	svc := &Service{Secret: []byte("test_secret")}

	_, err := svc.Identity("not-a-token")
	require.ErrorIs(t, err, ErrUnauthenticated)

	other := &Service{Secret: []byte("other_secret")}
	signed, _, err := other.Issue(testUser("user1"))
	require.NoError(t, err)
	_, err = svc.Identity(signed)
	require.ErrorIs(t, err, ErrUnauthenticated)

	expired := SessionClaims{
		Username: "user1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString(svc.Secret)
	require.NoError(t, err)
	_, err = svc.Identity(raw)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestFromRequestHeaderBeatsCookie(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})
	c := e.NewContext(req, httptest.NewRecorder())

	raw, ok := FromRequest(c)
	require.True(t, ok)
	require.Equal(t, "header-token", raw)

	req = httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})
	c = e.NewContext(req, httptest.NewRecorder())

	raw, ok = FromRequest(c)
	require.True(t, ok)
	require.Equal(t, "cookie-token", raw)

	req = httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	_, ok = FromRequest(c)
	require.False(t, ok)
}
