package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"ana@x.com"`
	Password string `json:"password" validate:"required" example:"pw123"`
}
