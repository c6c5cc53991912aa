// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"fmt"

	"lunai-users/internal/database"
	"lunai-users/internal/model"
	"lunai-users/internal/store"
)

// ErrInvalidCredentials 同時代表 email 不存在與密碼錯誤
var ErrInvalidCredentials = errors.New("invalid credentials")

var getUserByEmail = store.GetUserByEmail

// VerifyCredentials 以 email 取出使用者並比對密碼；成功回傳使用者，不產生任何副作用
func VerifyCredentials(ctx context.Context, db database.DB, h *Hasher, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := getUserByEmail(ctx, db, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("VerifyCredentials: %w", err)
	}

	if err := h.Compare(ctx, user.PasswordHash, password); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("VerifyCredentials: %w", ctxErr)
		}
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
