package services

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
)

type TeamServiceInterface interface {
	GetTeams(ctx context.Context) ([]dto.TeamDTO, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamDTO, error)
}

type TeamService struct {
	teamRepository repositories.TeamRepositoryInterface
	logger         *zap.Logger
}

func NewTeamService(teamRepository repositories.TeamRepositoryInterface, logger *zap.Logger) TeamServiceInterface {
	return &TeamService{
		teamRepository: teamRepository,
		logger:         logger,
	}
}

func teamEntityToDTO(entity entities.Team) dto.TeamDTO {
	return dto.TeamDTO{
		ID:        entity.ID,
		Name:      entity.Name,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
}

func teamEntityToShortDTO(entity *entities.Team) *dto.ShortTeamDTO {
	if entity == nil {
		return nil
	}
	return &dto.ShortTeamDTO{ID: entity.ID, Name: entity.Name}
}

func (s *TeamService) GetTeams(ctx context.Context) ([]dto.TeamDTO, error) {
	teams, err := s.teamRepository.GetTeams(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(teams, func(t entities.Team, _ int) dto.TeamDTO { return teamEntityToDTO(t) }), nil
}

func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamDTO, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, apperrors.NewInvalidInputError("Название команды обязательно")
	}

	created, err := s.teamRepository.CreateTeam(ctx, nil, entities.Team{Name: name})
	if err != nil {
		s.logger.Error("Ошибка при создании команды", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Команда создана", zap.Uint64("id", created.ID), zap.String("name", created.Name))
	result := teamEntityToDTO(*created)
	return &result, nil
}
