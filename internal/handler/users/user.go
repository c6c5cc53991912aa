// File: internal/handler/users/user.go
package users

import (
	"net/http"
	"strconv"

	"lunai-users/internal/api"
	"lunai-users/internal/database"
	"lunai-users/internal/handler"
	"lunai-users/internal/logging"
	"lunai-users/internal/model"
	"lunai-users/internal/service"
	"lunai-users/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword = (*service.Hasher).Hash
	listUsers    = store.ListUsers
	createUser   = store.CreateUser
	updateUser   = store.UpdateUser
	deleteUser   = store.DeleteUser
)

// parseID 讀取路徑參數 :id；非數字或超出 SERIAL (int4) 範圍時回傳 false
func parseID(c echo.Context) (int, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return int(id), true
}

// ListUsersHandler 列出所有使用者（不含密碼）
// @Summary     List users
// @Description 依 id 排序回傳所有使用者
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  api.UserResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponses(list))
	}
}

// CreateUserHandler 建立使用者，密碼先雜湊再寫入
// @Summary     Create user
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       user body     api.CreateUserRequest true "使用者資料"
// @Success     201  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /users [post]
func CreateUserHandler(db database.DB, h *service.Hasher) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.MsgAllFieldsRequired})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.MsgAllFieldsRequired})
		}

		ctx := c.Request().Context()
		hash, err := hashPassword(h, ctx, req.Password)
		if err != nil {
			return handler.RespondError(c, err)
		}

		created, err := createUser(ctx, db, &model.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         model.Role(req.Role),
		})
		if err != nil {
			return handler.RespondError(c, err)
		}
		logging.FromContext(c).WithField("user_id", created.ID).Info("user created")
		return c.JSON(http.StatusCreated, api.NewUserResponse(*created))
	}
}

// UpdateUserHandler 整筆更新 name/email/role；password 為空時保留原密碼
// @Summary     Update user
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path     int                   true "使用者 ID"
// @Param       user body     api.UpdateUserRequest true "使用者資料"
// @Success     200  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /users/{id} [put]
func UpdateUserHandler(db database.DB, h *service.Hasher) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.MsgInvalidUserID})
		}
		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.MsgUpdateFieldsRequired})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.MsgUpdateFieldsRequired})
		}

		ctx := c.Request().Context()
		var newHash *string
		if req.Password != "" {
			hash, err := hashPassword(h, ctx, req.Password)
			if err != nil {
				return handler.RespondError(c, err)
			}
			newHash = &hash
		}

		updated, err := updateUser(ctx, db, &model.User{
			ID:    id,
			Name:  req.Name,
			Email: req.Email,
			Role:  model.Role(req.Role),
		}, newHash)
		if err != nil {
			return handler.RespondError(c, err)
		}
		logging.FromContext(c).WithField("user_id", id).Info("user updated")
		return c.JSON(http.StatusOK, api.NewUserResponse(*updated))
	}
}

// DeleteUserHandler 刪除使用者
// @Summary     Delete user
// @Tags        users
// @Security    BearerAuth
// @Param       id  path int true "使用者 ID"
// @Success     204
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/{id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.MsgInvalidUserID})
		}
		if err := deleteUser(c.Request().Context(), db, id); err != nil {
			return handler.RespondError(c, err)
		}
		logging.FromContext(c).WithField("user_id", id).Info("user deleted")
		return c.NoContent(http.StatusNoContent)
	}
}
