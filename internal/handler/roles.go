package handler

import (
	"net/http"

	"lunai-users/internal/model"

	"github.com/labstack/echo/v4"
)

// ListRolesHandler 回傳固定的角色清單
// @Summary     List roles
// @Description 回傳固定的角色清單，不查詢資料庫
// @Tags        roles
// @Produce     json
// @Success     200 {array} string
// @Router      /roles [get]
func ListRolesHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, model.Roles())
	}
}
