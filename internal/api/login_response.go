package api

import "time"

// swagger:model api.SessionUser
type SessionUser struct {
	ID    int    `json:"id" example:"1"`
	Name  string `json:"name" example:"Ana"`
	Email string `json:"email" example:"ana@x.com"`
	Role  string `json:"role" example:"usuario"`
}

// swagger:model api.LoginResponse
type LoginResponse struct {
	Message string      `json:"message" example:"Login successful!"`
	User    SessionUser `json:"user"`
	// 只有設定 JWT_SECRET 時才會回傳
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
