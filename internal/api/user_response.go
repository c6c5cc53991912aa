package api

import (
	"time"

	"lunai-users/internal/model"
)

// swagger:model api.UserResponse
type UserResponse struct {
	ID            int       `json:"id" example:"1"`
	Name          string    `json:"name" example:"Ana"`
	Email         string    `json:"email" example:"ana@x.com"`
	Rol           string    `json:"rol" example:"usuario"`
	FechaCreacion time.Time `json:"fecha_creacion" example:"2025-05-01T15:04:05Z"`
	Activo        bool      `json:"activo" example:"true"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Rol:           string(u.Role),
		FechaCreacion: u.CreatedAt,
		Activo:        u.Active,
	}
}

func NewUserResponses(users []model.User) []UserResponse {
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, NewUserResponse(u))
	}
	return resp
}
