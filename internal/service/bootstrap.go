package service

import (
	"context"
	"errors"
	"fmt"

	"lunai-users/internal/database"
	"lunai-users/internal/model"
	"lunai-users/internal/store"
)

var createUser = store.CreateUser

// EnsureAdmin 建立初始 admin 帳號；email 或名稱已存在時不做任何變更並回傳 false
func EnsureAdmin(ctx context.Context, db database.DB, h *Hasher, name, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	hash, err := h.Hash(ctx, password)
	if err != nil {
		return false, fmt.Errorf("EnsureAdmin: %w", err)
	}
	_, err = createUser(ctx, db, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
	if errors.Is(err, store.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("EnsureAdmin: %w", err)
	}
	return true, nil
}
