package middleware

import (
	"net/http"
	"strings"

	"lunai-users/internal/api"
	"lunai-users/internal/model"
	"lunai-users/internal/service"

	"github.com/labstack/echo/v4"
)

// ContextSessionKey 是 echo.Context 中存放 *service.SessionClaims 的 key
const ContextSessionKey = "session"

func extractClaims(c echo.Context, s *service.Sessions) (*service.SessionClaims, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, api.ErrorResponse{Error: api.MsgInvalidSession})
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, api.ErrorResponse{Error: api.MsgInvalidSession})
	}
	claims, err := s.Verify(c.Request().Context(), parts[1])
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, api.ErrorResponse{Error: api.MsgInvalidSession}).SetInternal(err)
	}
	return claims, nil
}

// Session 取出 RequireAuth 放入的 session；沒有時 ok 為 false
func Session(c echo.Context) (*service.SessionClaims, bool) {
	claims, ok := c.Get(ContextSessionKey).(*service.SessionClaims)
	return claims, ok && claims != nil
}

// RequireAuth 驗證 Bearer token 並把 session 放進 context
func RequireAuth(s *service.Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c, s)
			if err != nil {
				return err
			}
			c.Set(ContextSessionKey, claims)
			return next(c)
		}
	}
}

// RequireAdmin 在 RequireAuth 之上要求 admin 角色
func RequireAdmin(s *service.Sessions) echo.MiddlewareFunc {
	auth := RequireAuth(s)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth(func(c echo.Context) error {
			claims, _ := Session(c)
			if claims.Role != model.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, api.ErrorResponse{Error: api.MsgForbidden})
			}
			return next(c)
		})
	}
}

// When 在 enabled 為 false 時略過 mw
func When(enabled bool, mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	if enabled {
		return mw
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
}
