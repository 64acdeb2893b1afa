package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("test_secret")

	token, err := SignAccessToken(42, true, secret)
	require.NoError(t, err)

	principal, err := ParseAccessToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, uint(42), principal.ID)
	require.True(t, principal.Admin)

	_, err = ParseAccessToken(token, []byte("other_secret"))
	require.Error(t, err)
}

func TestRequireAuth(t *testing.T) {
	secret := []byte("test_secret")
	e := echo.New()

	handler := RequireAuth(secret)(func(c echo.Context) error {
		principal, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, echo.Map{"id": principal.ID, "admin": principal.Admin})
	})

	token, err := SignAccessToken(7, false, secret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthMissingToken(t *testing.T) {
	e := echo.New()

	handler := RequireAuth([]byte("test_secret"))(func(c echo.Context) error {
		t.Fatal("handler must not run without a token")
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	err := handler(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthCookieFallback(t *testing.T) {
	secret := []byte("test_secret")
	e := echo.New()

	handler := RequireAuth(secret)(func(c echo.Context) error {
		principal, _ := PrincipalFromContext(c)
		require.Equal(t, uint(9), principal.ID)
		return c.NoContent(http.StatusOK)
	})

	token, err := SignAccessToken(9, false, secret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
}
