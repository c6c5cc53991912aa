// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"

	"lunai-users/internal/api"
	"lunai-users/internal/database"
	"lunai-users/internal/handler"
	"lunai-users/internal/logging"
	"lunai-users/internal/model"
	"lunai-users/internal/service"

	"github.com/labstack/echo/v4"
)

var verifyCredentials = service.VerifyCredentials

func summary(id int, name, email string, role model.Role) api.SessionUser {
	return api.SessionUser{ID: id, Name: name, Email: email, Role: string(role)}
}

// LoginHandler 以 email/password 驗證使用者，設定 JWT_SECRET 時一併簽發 session token
// @Summary     Login
// @Description 驗證 email 與密碼，回傳使用者摘要
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       credentials body     api.LoginRequest true "登入資料"
// @Success     200         {object} api.LoginResponse
// @Failure     400         {object} api.ErrorResponse
// @Failure     401         {object} api.ErrorResponse
// @Failure     500         {object} api.ErrorResponse
// @Router      /login [post]
func LoginHandler(db database.DB, h *service.Hasher, s *service.Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.MsgLoginFieldsRequired})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.MsgLoginFieldsRequired})
		}

		user, err := verifyCredentials(c.Request().Context(), db, h, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				logging.FromContext(c).Info("login rejected")
			}
			return handler.RespondError(c, err)
		}

		resp := api.LoginResponse{
			Message: "Login successful!",
			User:    summary(user.ID, user.Name, user.Email, user.Role),
		}
		if s.Enabled() {
			token, expires, err := s.Issue(*user)
			if err != nil {
				return handler.RespondError(c, err)
			}
			resp.Token = token
			resp.ExpiresAt = &expires
		}
		logging.FromContext(c).WithField("user_id", user.ID).Info("login succeeded")
		return c.JSON(http.StatusOK, resp)
	}
}
