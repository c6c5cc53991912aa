package auth

import (
	"net/http"

	"lunai-users/internal/api"
	"lunai-users/internal/handler"
	"lunai-users/internal/middleware"
	"lunai-users/internal/service"

	"github.com/labstack/echo/v4"
)

// LogoutHandler 撤銷目前的 session token，需搭配 middleware.RequireAuth
// @Summary     Logout
// @Tags        auth
// @Security    BearerAuth
// @Success     204
// @Failure     401 {object} api.ErrorResponse
// @Failure     503 {object} api.ErrorResponse
// @Router      /logout [post]
func LogoutHandler(s *service.Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.Session(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: api.MsgInvalidSession})
		}
		if err := s.Revoke(c.Request().Context(), claims); err != nil {
			return handler.RespondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// SessionHandler 回傳 token 內的使用者摘要，需搭配 middleware.RequireAuth
// @Summary     Current session
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} api.SessionUser
// @Failure     401 {object} api.ErrorResponse
// @Router      /session [get]
func SessionHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.Session(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: api.MsgInvalidSession})
		}
		return c.JSON(http.StatusOK, summary(claims.UserID, claims.Name, claims.Email, claims.Role))
	}
}
