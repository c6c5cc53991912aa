// File: internal/api/update_user_request.go
package api

// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required" example:"Ana"`
	Email string `json:"email" validate:"required" example:"ana@x.com"`
	Role  string `json:"role" validate:"required" example:"moderador"`
	// 空字串或省略時保留原密碼
	Password string `json:"password,omitempty" example:"newSecret"`
}
