package handler

import (
	"errors"
	"net/http"

	"lunai-users/internal/api"
	"lunai-users/internal/logging"
	"lunai-users/internal/service"
	"lunai-users/internal/store"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
)

// RespondError 把 store/service 的錯誤轉成 HTTP 回應；只有非預期錯誤會記錄並回報 Sentry，
// 且回應內容不包含內部訊息
func RespondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, api.ErrorResponse{Error: api.MsgUserNotFound})
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusConflict, api.ErrorResponse{Error: api.MsgUserConflict})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: api.MsgInvalidCredentials})
	case errors.Is(err, service.ErrInvalidSession):
		return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: api.MsgInvalidSession})
	case errors.Is(err, service.ErrRevocationUnavailable):
		return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: api.MsgRevocationDisabled})
	}

	logging.FromContext(c).WithError(err).
		WithField("path", c.Path()).
		Error("Unhandled internal server error")
	if hub := sentry.GetHubFromContext(c.Request().Context()); hub != nil {
		hub.CaptureException(err)
	}
	return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.MsgServerError})
}
