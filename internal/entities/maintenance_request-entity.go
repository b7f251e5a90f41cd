package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"gearguard/pkg/constants"
	"gearguard/pkg/types"
)

type MaintenanceRequest struct {
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
	// TeamID - снимок maintenance_team_id оборудования на момент создания заявки
	TeamID       null.Uint64 `json:"teamId"`
	TechnicianID null.Uint64 `json:"technicianId"`
	CreatedByID  null.Uint64 `json:"createdById"`

	types.BaseEntity

	Equipment  *Equipment `db:"-"`
	Team       *Team      `db:"-"`
	Technician *User      `db:"-"`
	CreatedBy  *User      `db:"-"`
}

func (r *MaintenanceRequest) IsOpen() bool {
	return !constants.IsClosedStage(r.Stage)
}

// IsOverdue - плановая дата раньше начала текущего дня, а заявка еще открыта.
func (r *MaintenanceRequest) IsOverdue(now time.Time) bool {
	if !r.ScheduledDate.Valid || !r.IsOpen() {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return r.ScheduledDate.Time.Before(today)
}
