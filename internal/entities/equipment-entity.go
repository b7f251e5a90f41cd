package entities

import (
	"github.com/aarondl/null/v8"

	"gearguard/pkg/types"
)

type Equipment struct {
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

	types.BaseEntity

	// Поля для связанных данных (не колонки в таблице)
	MaintenanceTeam *Team `db:"-"`
	Technician      *User `db:"-"`
	Owner           *User `db:"-"`
}
