package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lunai-users/internal/model"
	"lunai-users/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newContext(auth string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func requireStatus(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "expected *echo.HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
}

func TestExtractClaims(t *testing.T) {
	s := service.NewSessions("testsecret", time.Minute, nil)

	// missing header
	ctx, _ := newContext("")
	_, err := extractClaims(ctx, s)
	requireStatus(t, err, http.StatusUnauthorized)

	// bad format
	ctx, _ = newContext("BadHeader")
	_, err = extractClaims(ctx, s)
	requireStatus(t, err, http.StatusUnauthorized)

	// invalid token
	ctx, _ = newContext("Bearer invalid")
	_, err = extractClaims(ctx, s)
	requireStatus(t, err, http.StatusUnauthorized)

	// sessions disabled
	ctx, _ = newContext("Bearer x")
	_, err = extractClaims(ctx, service.NewSessions("", time.Minute, nil))
	requireStatus(t, err, http.StatusUnauthorized)

	// valid token
	tok, _, err := s.Issue(model.User{ID: 1, Role: model.RoleAdmin})
	require.NoError(t, err)
	ctx, _ = newContext("bearer " + tok)
	claims, err := extractClaims(ctx, s)
	require.NoError(t, err)
	require.Equal(t, 1, claims.UserID)
	require.Equal(t, model.RoleAdmin, claims.Role)
}

func TestRequireAuth(t *testing.T) {
	s := service.NewSessions("secret", time.Minute, nil)
	tok, _, err := s.Issue(model.User{ID: 2})
	require.NoError(t, err)

	// success path
	ctx, rec := newContext("Bearer " + tok)
	called := false
	handler := RequireAuth(s)(func(c echo.Context) error {
		called = true
		cl, ok := Session(c)
		require.True(t, ok)
		require.Equal(t, 2, cl.UserID)
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(ctx))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// missing token
	ctx, _ = newContext("")
	called = false
	err = RequireAuth(s)(func(echo.Context) error { called = true; return nil })(ctx)
	requireStatus(t, err, http.StatusUnauthorized)
	require.False(t, called)
}

func TestRequireAdmin(t *testing.T) {
	s := service.NewSessions("adminsecret", time.Minute, nil)
	adminTok, _, err := s.Issue(model.User{ID: 3, Role: model.RoleAdmin})
	require.NoError(t, err)
	userTok, _, err := s.Issue(model.User{ID: 4, Role: model.RoleModerator})
	require.NoError(t, err)

	// admin ok
	ctx, rec := newContext("Bearer " + adminTok)
	called := false
	err = RequireAdmin(s)(func(c echo.Context) error { called = true; return c.String(http.StatusOK, "admin") })(ctx)
	require.NoError(t, err)
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// non-admin should fail
	ctx, _ = newContext("Bearer " + userTok)
	called = false
	err = RequireAdmin(s)(func(c echo.Context) error { called = true; return nil })(ctx)
	requireStatus(t, err, http.StatusForbidden)
	require.False(t, called)

	// no token at all
	ctx, _ = newContext("")
	err = RequireAdmin(s)(func(c echo.Context) error { called = true; return nil })(ctx)
	requireStatus(t, err, http.StatusUnauthorized)
	require.False(t, called)
}

func TestWhen(t *testing.T) {
	blocked := func(echo.HandlerFunc) echo.HandlerFunc {
		return func(echo.Context) error { return errors.New("blocked") }
	}
	next := func(echo.Context) error { return nil }
	ctx, _ := newContext("")

	require.NoError(t, When(false, blocked)(next)(ctx))
	require.EqualError(t, When(true, blocked)(next)(ctx), "blocked")
}

func TestSessionHelper(t *testing.T) {
	ctx, _ := newContext("")
	_, ok := Session(ctx)
	require.False(t, ok)

	ctx.Set(ContextSessionKey, (*service.SessionClaims)(nil))
	_, ok = Session(ctx)
	require.False(t, ok)
}
