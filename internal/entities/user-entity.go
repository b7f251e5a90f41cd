package entities

import (
	"github.com/aarondl/null/v8"

	"gearguard/pkg/types"
)

type User struct {
	ID     uint64      `json:"id"`
	Name   string      `json:"name"`
	Role   string      `json:"role"`
	Avatar null.String `json:"avatar"`
	TeamID null.Uint64 `json:"teamId"`

	types.BaseEntity
}
