package services

import (
	"context"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDetailDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
}

type EquipmentService struct {
	equipmentRepository   repositories.EquipmentRepositoryInterface
	maintenanceRepository repositories.MaintenanceRequestRepositoryInterface
	logger                *zap.Logger
}

func NewEquipmentService(
	equipmentRepository repositories.EquipmentRepositoryInterface,
	maintenanceRepository repositories.MaintenanceRequestRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepository:   equipmentRepository,
		maintenanceRepository: maintenanceRepository,
		logger:                logger,
	}
}

func equipmentEntityToDTO(entity entities.Equipment) dto.EquipmentDTO {
	return dto.EquipmentDTO{
		ID:                 entity.ID,
		Name:               entity.Name,
		SerialNumber:       entity.SerialNumber,
		PurchaseDate:       entity.PurchaseDate,
		WarrantyExpiration: entity.WarrantyExpiration,
		Location:           entity.Location,
		Department:         entity.Department,
		Category:           entity.Category,
		Status:             entity.Status,
		MaintenanceTeamID:  entity.MaintenanceTeamID,
		TechnicianID:       entity.TechnicianID,
		OwnerID:            entity.OwnerID,
		MaintenanceTeam:    teamEntityToShortDTO(entity.MaintenanceTeam),
		AssignedTechnician: userEntityToShortDTO(entity.Technician),
		Owner:              userEntityToShortDTO(entity.Owner),
		CreatedAt:          entity.CreatedAt,
		UpdatedAt:          entity.UpdatedAt,
	}
}

func equipmentEntityToShortDTO(entity *entities.Equipment) *dto.ShortEquipmentDTO {
	if entity == nil {
		return nil
	}
	return &dto.ShortEquipmentDTO{
		ID:           entity.ID,
		Name:         entity.Name,
		SerialNumber: entity.SerialNumber,
		Category:     entity.Category,
		Location:     entity.Location,
		Department:   entity.Department,
		Status:       entity.Status,
	}
}

// blankToNull - пустая строка из формы хранится как NULL.
func blankToNull(s null.String) null.String {
	if !s.Valid || strings.TrimSpace(s.String) == "" {
		return null.String{}
	}
	return null.StringFrom(strings.TrimSpace(s.String))
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, error) {
	equipments, err := s.equipmentRepository.GetEquipments(ctx, filter)
	if err != nil {
		return nil, err
	}
	return lo.Map(equipments, func(e entities.Equipment, _ int) dto.EquipmentDTO { return equipmentEntityToDTO(e) }), nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDetailDTO, error) {
	equipment, err := s.equipmentRepository.FindEquipment(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	openCount, err := s.maintenanceRepository.CountOpenRequestsByEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.EquipmentDetailDTO{
		EquipmentDTO:      equipmentEntityToDTO(*equipment),
		OpenRequestsCount: openCount,
	}, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, apperrors.NewInvalidInputError("Название оборудования обязательно")
	}

	status := payload.Status
	if status == "" {
		status = constants.EquipmentOperational
	}
	if !constants.Contains(constants.EquipmentStatuses, status) {
		return nil, apperrors.NewInvalidInputError("Недопустимый статус оборудования: %s", status)
	}

	entity := entities.Equipment{
		Name:               name,
		SerialNumber:       blankToNull(payload.SerialNumber),
		PurchaseDate:       payload.PurchaseDate.Time,
		WarrantyExpiration: payload.WarrantyExpiration.Time,
		Location:           blankToNull(payload.Location),
		Department:         blankToNull(payload.Department),
		Category:           blankToNull(payload.Category),
		Status:             status,
		MaintenanceTeamID:  payload.MaintenanceTeamID.ID,
		TechnicianID:       payload.TechnicianID.ID,
		OwnerID:            payload.OwnerID.ID,
	}

	newID, err := s.equipmentRepository.CreateEquipment(ctx, nil, entity)
	if err != nil {
		s.logger.Error("Ошибка при создании оборудования", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	created, err := s.equipmentRepository.FindEquipment(ctx, nil, newID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Оборудование создано", zap.Uint64("id", newID), zap.String("name", name))
	result := equipmentEntityToDTO(*created)
	return &result, nil
}
