package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lunai-users/internal/database"
	"lunai-users/internal/model"
	"lunai-users/internal/service"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func newLoginCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func restore() {
	verifyCredentials = service.VerifyCredentials
}

var ana = &model.User{ID: 1, Name: "Ana", Email: "ana@x.com", PasswordHash: "hash", Role: model.RoleUser}

func TestLoginHandler(t *testing.T) {
	e := echo.New()
	e.Validator = &stubValidator{}

	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newLoginCtx(e, "{")
		require.NoError(t, LoginHandler(nil, nil, nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"error":"Email and password are required."}`, rec.Body.String())
	})

	t.Run("validate error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("v")}
		t.Cleanup(func() { e.Validator = &stubValidator{} })
		verifyCredentials = func(context.Context, database.DB, *service.Hasher, string, string) (*model.User, error) {
			t.Fatal("store must not be touched")
			return nil, nil
		}
		ctx, rec := newLoginCtx(e, `{"email":"ana@x.com"}`)
		require.NoError(t, LoginHandler(nil, nil, nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"error":"Email and password are required."}`, rec.Body.String())
	})

	t.Run("invalid credentials", func(t *testing.T) {
		t.Cleanup(restore)
		verifyCredentials = func(context.Context, database.DB, *service.Hasher, string, string) (*model.User, error) {
			return nil, service.ErrInvalidCredentials
		}
		ctx, rec := newLoginCtx(e, `{"email":"ana@x.com","password":"wrong"}`)
		require.NoError(t, LoginHandler(nil, nil, nil)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"error":"Invalid credentials."}`, rec.Body.String())
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Cleanup(restore)
		verifyCredentials = func(context.Context, database.DB, *service.Hasher, string, string) (*model.User, error) {
			return nil, fmt.Errorf("VerifyCredentials: %w", errors.New("conn reset"))
		}
		ctx, rec := newLoginCtx(e, `{"email":"ana@x.com","password":"pw123"}`)
		require.NoError(t, LoginHandler(nil, nil, nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.JSONEq(t, `{"error":"Server Error"}`, rec.Body.String())
	})

	t.Run("success without sessions", func(t *testing.T) {
		t.Cleanup(restore)
		verifyCredentials = func(_ context.Context, _ database.DB, _ *service.Hasher, email, password string) (*model.User, error) {
			require.Equal(t, "ana@x.com", email)
			require.Equal(t, "pw123", password)
			return ana, nil
		}
		ctx, rec := newLoginCtx(e, `{"email":"ana@x.com","password":"pw123"}`)
		require.NoError(t, LoginHandler(nil, nil, nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"message":"Login successful!","user":{"id":1,"name":"Ana","email":"ana@x.com","role":"usuario"}}`, rec.Body.String())
	})

	t.Run("success with token", func(t *testing.T) {
		t.Cleanup(restore)
		verifyCredentials = func(context.Context, database.DB, *service.Hasher, string, string) (*model.User, error) {
			return ana, nil
		}
		s := service.NewSessions("secret", time.Hour, nil)
		ctx, rec := newLoginCtx(e, `{"email":"ana@x.com","password":"pw123"}`)
		require.NoError(t, LoginHandler(nil, nil, s)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"token":"`)
		require.Contains(t, rec.Body.String(), `"expires_at":"`)
		require.NotContains(t, rec.Body.String(), "hash")
	})
}

// userRow 依 id, nombre_usuario, email, rol, fecha_creacion, activo, contraseña 的順序回填
type userRow struct {
	u    model.User
	hash string
	err  error
}

func (r userRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int) = r.u.ID
	*dest[1].(*string) = r.u.Name
	*dest[2].(*string) = r.u.Email
	*dest[3].(*model.Role) = r.u.Role
	*dest[4].(*time.Time) = r.u.CreatedAt
	*dest[5].(*bool) = r.u.Active
	*dest[6].(*string) = r.hash
	return nil
}

func TestLoginHandlerWithStore(t *testing.T) {
	hash, err := service.HashPassword("pw123")
	require.NoError(t, err)

	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			if args[0] != ana.Email {
				return userRow{err: pgx.ErrNoRows}
			}
			return userRow{u: *ana, hash: hash}
		},
	}
	e := echo.New()
	e.Validator = &stubValidator{}
	h := service.NewHasher(nil)

	ctx, rec := newLoginCtx(e, `{"email":"ana@x.com","password":"pw123"}`)
	require.NoError(t, LoginHandler(db, h, nil)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"id":1`)

	ctx, rec = newLoginCtx(e, `{"email":"ana@x.com","password":"wrong"}`)
	require.NoError(t, LoginHandler(db, h, nil)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// email 區分大小寫
	ctx, rec = newLoginCtx(e, `{"email":"ANA@x.com","password":"pw123"}`)
	require.NoError(t, LoginHandler(db, h, nil)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"Invalid credentials."}`, rec.Body.String())
}
