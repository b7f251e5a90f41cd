package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"gearguard/pkg/types"
)

type CreateEquipmentDTO struct {
	Name               string           `json:"name"               validate:"required,max=255"`
	SerialNumber       null.String      `json:"serialNumber"       validate:"omitempty,max=255"`
	PurchaseDate       types.Date       `json:"purchaseDate"`
	WarrantyExpiration types.Date       `json:"warrantyExpiration"`
	Location           null.String      `json:"location"           validate:"omitempty,max=255"`
	Department         null.String      `json:"department"         validate:"omitempty,max=255"`
	Category           null.String      `json:"category"           validate:"omitempty,max=255"`
	Status             string           `json:"status"             validate:"omitempty,equipment_status"`
	MaintenanceTeamID  types.OptionalID `json:"maintenanceTeamId"`
	TechnicianID       types.OptionalID `json:"technicianId"`
	OwnerID            types.OptionalID `json:"ownerId"`
}

type EquipmentDTO struct {
	ID                 uint64      `json:"id"`
	Name               string      `json:"name"`
	SerialNumber       null.String `json:"serialNumber"`
	PurchaseDate       null.Time   `json:"purchaseDate"`
	WarrantyExpiration null.Time   `json:"warrantyExpiration"`
	Location           null.String `json:"location"`
	Department         null.String `json:"department"`
	Category           null.String `json:"category"`
	Status             string      `json:"status"`
	MaintenanceTeamID  null.Uint64 `json:"maintenanceTeamId"`
	TechnicianID       null.Uint64 `json:"technicianId"`
	OwnerID            null.Uint64 `json:"ownerId"`

	MaintenanceTeam    *ShortTeamDTO `json:"maintenanceTeam"`
	AssignedTechnician *ShortUserDTO `json:"assignedTechnician"`
	Owner              *ShortUserDTO `json:"owner"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EquipmentDetailDTO - карточка оборудования с количеством открытых заявок.
type EquipmentDetailDTO struct {
	EquipmentDTO
	OpenRequestsCount uint64 `json:"openRequestsCount"`
}

type ShortEquipmentDTO struct {
	ID           uint64      `json:"id"`
	Name         string      `json:"name"`
	SerialNumber null.String `json:"serialNumber"`
	Category     null.String `json:"category"`
	Location     null.String `json:"location"`
	Department   null.String `json:"department"`
	Status       string      `json:"status"`
}
