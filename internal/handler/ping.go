// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"lunai-users/internal/api"
	"lunai-users/internal/cache"
	"lunai-users/internal/database"
	"lunai-users/internal/logging"

	"github.com/labstack/echo/v4"
)

const pingKey = "health:ping"

// RootHandler 回傳純文字，表示伺服器仍在運作
func RootHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, "En estos momentos el servidor está activo!!!")
	}
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與（若有設定）Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.PingResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			logging.FromContext(c).WithError(err).Warn("database ping failed")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "database unhealthy"})
		}
		if cch != nil {
			if err := cch.Set(ctx, pingKey, "pong", time.Minute).Err(); err != nil {
				logging.FromContext(c).WithError(err).Warn("cache ping failed")
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "cache unhealthy"})
			}
		}
		return c.JSON(http.StatusOK, api.PingResponse{Message: "pong"})
	}
}
