package events

import (
	"time"

	"github.com/google/uuid"

	"gearguard/internal/entities"
)

const (
	MaintenanceRequestCreated      = "maintenance.request.created"
	MaintenanceRequestStageChanged = "maintenance.request.stage_changed"
	EquipmentScrapped              = "equipment.scrapped"
)

// Meta - общие поля любого доменного события.
type Meta struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
}

func newMeta() Meta {
	return Meta{ID: uuid.NewString(), OccurredAt: time.Now().UTC()}
}

// RequestCreatedEvent - создана новая заявка на обслуживание.
type RequestCreatedEvent struct {
	Meta
	RequestID   uint64  `json:"requestId"`
	EquipmentID uint64  `json:"equipmentId"`
	TeamID      *uint64 `json:"teamId"`
	Stage       string  `json:"stage"`
	Subject     string  `json:"subject"`
	Type        string  `json:"type"`
	Priority    string  `json:"priority"`
}

func NewRequestCreatedEvent(req entities.MaintenanceRequest) RequestCreatedEvent {
	return RequestCreatedEvent{
		Meta:        newMeta(),
		RequestID:   req.ID,
		EquipmentID: req.EquipmentID,
		TeamID:      req.TeamID.Ptr(),
		Stage:       req.Stage,
		Subject:     req.Subject,
		Type:        req.Type,
		Priority:    req.Priority,
	}
}

func (e RequestCreatedEvent) Name() string { return MaintenanceRequestCreated }

// StageChangedEvent - заявка перешла на другой этап.
type StageChangedEvent struct {
	Meta
	RequestID   uint64 `json:"requestId"`
	EquipmentID uint64 `json:"equipmentId"`
	FromStage   string `json:"fromStage"`
	ToStage     string `json:"toStage"`
}

func NewStageChangedEvent(req entities.MaintenanceRequest, from string) StageChangedEvent {
	return StageChangedEvent{
		Meta:        newMeta(),
		RequestID:   req.ID,
		EquipmentID: req.EquipmentID,
		FromStage:   from,
		ToStage:     req.Stage,
	}
}

func (e StageChangedEvent) Name() string { return MaintenanceRequestStageChanged }

// EquipmentScrappedEvent - оборудование списано вследствие заявки.
type EquipmentScrappedEvent struct {
	Meta
	EquipmentID uint64 `json:"equipmentId"`
	RequestID   uint64 `json:"requestId"`
}

func NewEquipmentScrappedEvent(equipmentID, requestID uint64) EquipmentScrappedEvent {
	return EquipmentScrappedEvent{
		Meta:        newMeta(),
		EquipmentID: equipmentID,
		RequestID:   requestID,
	}
}

func (e EquipmentScrappedEvent) Name() string { return EquipmentScrapped }
