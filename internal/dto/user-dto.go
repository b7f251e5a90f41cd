package dto

import (
	"github.com/aarondl/null/v8"

	"gearguard/pkg/types"
)

type CreateUserDTO struct {
	Name   string           `json:"name"   validate:"required,max=255"`
	Role   string           `json:"role"   validate:"omitempty,user_role"`
	Avatar null.String      `json:"avatar" validate:"omitempty,max=1024"`
	TeamID types.OptionalID `json:"teamId"`
}

// UserDTO - публичное представление пользователя (id, name, role, avatar, teamId).
type UserDTO struct {
	ID     uint64      `json:"id"`
	Name   string      `json:"name"`
	Role   string      `json:"role"`
	Avatar null.String `json:"avatar"`
	TeamID null.Uint64 `json:"teamId"`
}

type ShortUserDTO struct {
	ID     uint64      `json:"id"`
	Name   string      `json:"name"`
	Role   string      `json:"role"`
	Avatar null.String `json:"avatar"`
}
