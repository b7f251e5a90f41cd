package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"gearguard/pkg/types"
)

type CreateMaintenanceRequestDTO struct {
	Subject       string           `json:"subject"       validate:"required,max=255"`
	EquipmentID   types.OptionalID `json:"equipmentId"   validate:"required"`
	Type          string           `json:"type"          validate:"omitempty,request_type"`
	Description   null.String      `json:"description"`
	Priority      string           `json:"priority"      validate:"omitempty,request_priority"`
	ScheduledDate types.Date       `json:"scheduledDate"`
	Duration      null.Float64     `json:"duration"      validate:"omitempty,gte=0"`
	TechnicianID  types.OptionalID `json:"technicianId"`
	CreatedByID   types.OptionalID `json:"createdById"`
	// Stage принимается, но игнорируется: новая заявка всегда создается в "New"
	Stage string `json:"stage"`
}

// TransitionStageDTO - частичное обновление заявки.
// Поле применяется, только если оно присутствует в теле запроса.
type TransitionStageDTO struct {
	Stage        null.String      `json:"stage"        validate:"omitempty,maintenance_stage"`
	Duration     null.Float64     `json:"duration"     validate:"omitempty,gte=0"`
	TechnicianID types.OptionalID `json:"technicianId"`
}

func (d TransitionStageDTO) IsEmpty() bool {
	return !d.Stage.Valid && !d.Duration.Valid && !d.TechnicianID.Set
}

type MaintenanceRequestDTO struct {
	ID             uint64      `json:"id"`
	Subject        string      `json:"subject"`
	Type           string      `json:"type"`
	Description    null.String `json:"description"`
	Priority       string      `json:"priority"`
	Stage          string      `json:"stage"`
	ScheduledDate  null.Time   `json:"scheduledDate"`
	Duration       float64     `json:"duration"`
	CompletionDate null.Time   `json:"completionDate"`
	EquipmentID    uint64      `json:"equipmentId"`
	TeamID         null.Uint64 `json:"teamId"`
	TechnicianID   null.Uint64 `json:"technicianId"`
	CreatedByID    null.Uint64 `json:"createdById"`
	IsOverdue      bool        `json:"isOverdue"`

	// Имена ключей совпадают с тем, что ожидает фронтенд (req.Equipment, req.Team)
	Equipment  *ShortEquipmentDTO `json:"Equipment"`
	Team       *ShortTeamDTO      `json:"Team"`
	Technician *ShortUserDTO      `json:"technician"`
	CreatedBy  *ShortUserDTO      `json:"createdBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
