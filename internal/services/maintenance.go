package services

import (
	"context"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/types"
)

type MaintenanceServiceInterface interface {
	ListRequests(ctx context.Context, filter types.Filter) ([]dto.MaintenanceRequestDTO, error)
	CreateRequest(ctx context.Context, payload dto.CreateMaintenanceRequestDTO) (*dto.MaintenanceRequestDTO, error)
	TransitionStage(ctx context.Context, id uint64, patch dto.TransitionStageDTO) (*dto.MaintenanceRequestDTO, error)
}

type MaintenanceService struct {
	txManager             repositories.TxManagerInterface
	maintenanceRepository repositories.MaintenanceRequestRepositoryInterface
	equipmentRepository   repositories.EquipmentRepositoryInterface
	bus                   eventbus.Publisher
	logger                *zap.Logger
	now                   func() time.Time
}

func NewMaintenanceService(
	txManager repositories.TxManagerInterface,
	maintenanceRepository repositories.MaintenanceRequestRepositoryInterface,
	equipmentRepository repositories.EquipmentRepositoryInterface,
	bus eventbus.Publisher,
	logger *zap.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		txManager:             txManager,
		maintenanceRepository: maintenanceRepository,
		equipmentRepository:   equipmentRepository,
		bus:                   bus,
		logger:                logger,
		now:                   time.Now,
	}
}

func requestEntityToDTO(entity entities.MaintenanceRequest, now time.Time) dto.MaintenanceRequestDTO {
	return dto.MaintenanceRequestDTO{
		ID:             entity.ID,
		Subject:        entity.Subject,
		Type:           entity.Type,
		Description:    entity.Description,
		Priority:       entity.Priority,
		Stage:          entity.Stage,
		ScheduledDate:  entity.ScheduledDate,
		Duration:       entity.Duration,
		CompletionDate: entity.CompletionDate,
		EquipmentID:    entity.EquipmentID,
		TeamID:         entity.TeamID,
		TechnicianID:   entity.TechnicianID,
		CreatedByID:    entity.CreatedByID,
		IsOverdue:      entity.IsOverdue(now),
		Equipment:      equipmentEntityToShortDTO(entity.Equipment),
		Team:           teamEntityToShortDTO(entity.Team),
		Technician:     userEntityToShortDTO(entity.Technician),
		CreatedBy:      userEntityToShortDTO(entity.CreatedBy),
		CreatedAt:      entity.CreatedAt,
		UpdatedAt:      entity.UpdatedAt,
	}
}

func requestEntitiesToDTOs(requests []entities.MaintenanceRequest, now time.Time) []dto.MaintenanceRequestDTO {
	return lo.Map(requests, func(r entities.MaintenanceRequest, _ int) dto.MaintenanceRequestDTO {
		return requestEntityToDTO(r, now)
	})
}

func (s *MaintenanceService) ListRequests(ctx context.Context, filter types.Filter) ([]dto.MaintenanceRequestDTO, error) {
	requests, err := s.maintenanceRepository.GetRequests(ctx, filter)
	if err != nil {
		return nil, err
	}
	return requestEntitiesToDTOs(requests, s.now()), nil
}

// CreateRequest создает заявку в этапе New. Команда берется из оборудования на момент создания
// и дальше не синхронизируется.
func (s *MaintenanceService) CreateRequest(ctx context.Context, payload dto.CreateMaintenanceRequestDTO) (*dto.MaintenanceRequestDTO, error) {
	subject := strings.TrimSpace(payload.Subject)
	if subject == "" {
		return nil, apperrors.NewInvalidInputError("Тема заявки обязательна")
	}
	if !payload.EquipmentID.Valid() {
		return nil, apperrors.NewInvalidInputError("Не указано оборудование")
	}

	reqType := lo.Ternary(payload.Type == "", constants.RequestTypeCorrective, payload.Type)
	if !constants.Contains(constants.RequestTypes, reqType) {
		return nil, apperrors.NewInvalidInputError("Недопустимый тип заявки: %s", reqType)
	}
	priority := lo.Ternary(payload.Priority == "", constants.PriorityMedium, payload.Priority)
	if !constants.Contains(constants.Priorities, priority) {
		return nil, apperrors.NewInvalidInputError("Недопустимый приоритет: %s", priority)
	}
	if payload.Duration.Valid && payload.Duration.Float64 < 0 {
		return nil, apperrors.NewInvalidInputError("Длительность не может быть отрицательной")
	}

	var created *entities.MaintenanceRequest
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipment, err := s.equipmentRepository.FindEquipment(ctx, tx, payload.EquipmentID.Value())
		if err != nil {
			return err
		}

		entity := entities.MaintenanceRequest{
			Subject:       subject,
			Type:          reqType,
			Description:   blankToNull(payload.Description),
			Priority:      priority,
			Stage:         constants.StageNew,
			ScheduledDate: payload.ScheduledDate.Time,
			Duration:      payload.Duration.Float64,
			EquipmentID:   equipment.ID,
			TeamID:        equipment.MaintenanceTeamID,
			TechnicianID:  payload.TechnicianID.ID,
			CreatedByID:   payload.CreatedByID.ID,
		}

		newID, err := s.maintenanceRepository.CreateRequest(ctx, tx, entity)
		if err != nil {
			return err
		}

		created, err = s.maintenanceRepository.FindRequest(ctx, tx, newID)
		return err
	})
	if err != nil {
		s.logger.Error("Ошибка при создании заявки",
			zap.Uint64("equipmentID", payload.EquipmentID.Value()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Заявка на обслуживание создана",
		zap.Uint64("id", created.ID),
		zap.Uint64("equipmentID", created.EquipmentID),
	)
	s.bus.Publish(ctx, events.NewRequestCreatedEvent(*created))

	result := requestEntityToDTO(*created, s.now())
	return &result, nil
}

// TransitionStage применяет только присутствующие в patch поля.
// Списание оборудования и обновление заявки выполняются в одной транзакции.
func (s *MaintenanceService) TransitionStage(ctx context.Context, id uint64, patch dto.TransitionStageDTO) (*dto.MaintenanceRequestDTO, error) {
	if patch.Stage.Valid && !constants.Contains(constants.Stages, patch.Stage.String) {
		return nil, apperrors.NewInvalidInputError("Недопустимый этап: %s", patch.Stage.String)
	}
	if patch.Duration.Valid && patch.Duration.Float64 < 0 {
		return nil, apperrors.NewInvalidInputError("Длительность не может быть отрицательной")
	}

	// пустой patch ничего не меняет: отдаем заявку как есть, без блокировки
	if patch.IsEmpty() {
		current, err := s.maintenanceRepository.FindRequest(ctx, nil, id)
		if err != nil {
			return nil, err
		}
		result := requestEntityToDTO(*current, s.now())
		return &result, nil
	}

	var (
		updated       *entities.MaintenanceRequest
		previousStage string
		scrapped      bool
	)

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		req, err := s.maintenanceRepository.FindRequestForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		previousStage = req.Stage

		if patch.Stage.Valid {
			req.Stage = patch.Stage.String
			switch req.Stage {
			case constants.StageRepaired:
				req.CompletionDate = null.TimeFrom(s.now())
			case constants.StageScrap:
				if err := s.equipmentRepository.UpdateEquipmentStatus(ctx, tx, req.EquipmentID, constants.EquipmentScrap); err != nil {
					return err
				}
				scrapped = true
			}
		}
		if patch.Duration.Valid {
			req.Duration = patch.Duration.Float64
		}
		if patch.TechnicianID.Set {
			req.TechnicianID = patch.TechnicianID.ID
		}

		if err := s.maintenanceRepository.UpdateRequest(ctx, tx, *req); err != nil {
			return err
		}

		updated, err = s.maintenanceRepository.FindRequest(ctx, tx, id)
		return err
	})
	if err != nil {
		s.logger.Error("Ошибка при смене этапа заявки", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	if updated.Stage != previousStage {
		s.logger.Info("Этап заявки изменен",
			zap.Uint64("id", id),
			zap.String("from", previousStage),
			zap.String("to", updated.Stage),
		)
		s.bus.Publish(ctx, events.NewStageChangedEvent(*updated, previousStage))
	}
	if scrapped && previousStage != constants.StageScrap {
		s.logger.Warn("Оборудование списано по заявке",
			zap.Uint64("equipmentID", updated.EquipmentID),
			zap.Uint64("requestID", id),
		)
		s.bus.Publish(ctx, events.NewEquipmentScrappedEvent(updated.EquipmentID, id))
	}

	result := requestEntityToDTO(*updated, s.now())
	return &result, nil
}
