package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gearguard/pkg/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePermissionProvider struct {
	permissions []string
	err         error
}

func (f *fakePermissionProvider) GetRolePermissionsNames(ctx context.Context, roleID uint64) ([]string, error) {
	return f.permissions, f.err
}

func newTestMiddleware(permissions []string) (*AuthMiddleware, service.JWTService) {
	jwtSvc := service.NewJWTService("test-secret", time.Hour, 24*time.Hour, zap.NewNop())
	mw := NewAuthMiddleware(jwtSvc, &fakePermissionProvider{permissions: permissions}, zap.NewNop())
	return mw, jwtSvc
}

func doRequest(mw *AuthMiddleware, handler echo.HandlerFunc, authHeader string, extra ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := handler
	for i := len(extra) - 1; i >= 0; i-- {
		h = extra[i](h)
	}
	_ = mw.Auth(h)(c)
	return rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestAuthWithoutHeader(t *testing.T) {
	mw, _ := newTestMiddleware(nil)
	rec := doRequest(mw, okHandler, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthWithMalformedHeader(t *testing.T) {
	mw, _ := newTestMiddleware(nil)
	rec := doRequest(mw, okHandler, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthWithValidAccessToken(t *testing.T) {
	mw, jwtSvc := newTestMiddleware([]string{"equipment:view"})
	access, _, err := jwtSvc.GenerateTokens(7, 2)
	require.NoError(t, err)

	rec := doRequest(mw, okHandler, "Bearer "+access)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRejectsRefreshToken(t *testing.T) {
	mw, jwtSvc := newTestMiddleware(nil)
	_, refresh, err := jwtSvc.GenerateTokens(7, 2)
	require.NoError(t, err)

	rec := doRequest(mw, okHandler, "Bearer "+refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAllowsWithPermission(t *testing.T) {
	mw, jwtSvc := newTestMiddleware([]string{"equipment:view"})
	access, _, err := jwtSvc.GenerateTokens(7, 2)
	require.NoError(t, err)

	rec := doRequest(mw, okHandler, "Bearer "+access, mw.Require("equipment:view"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAllowsSuperuser(t *testing.T) {
	mw, jwtSvc := newTestMiddleware([]string{"superuser"})
	access, _, err := jwtSvc.GenerateTokens(7, 1)
	require.NoError(t, err)

	rec := doRequest(mw, okHandler, "Bearer "+access, mw.Require("equipment:delete"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireForbidsWithoutPermission(t *testing.T) {
	mw, jwtSvc := newTestMiddleware([]string{"equipment:view"})
	access, _, err := jwtSvc.GenerateTokens(7, 2)
	require.NoError(t, err)

	rec := doRequest(mw, okHandler, "Bearer "+access, mw.Require("equipment:delete"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
