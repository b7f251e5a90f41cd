package entities

import "gearguard/pkg/types"

type Team struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`

	types.BaseEntity
}
