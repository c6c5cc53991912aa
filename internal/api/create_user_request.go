package api

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required" example:"Ana"`
	Email    string `json:"email" validate:"required" example:"ana@x.com"`
	Password string `json:"password" validate:"required" example:"pw123"`
	Role     string `json:"role" validate:"required" example:"usuario"`
}
