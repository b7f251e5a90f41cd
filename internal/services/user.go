package services

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context) ([]dto.UserDTO, error)
	// GetTechnicians - пользователи, которым можно назначать заявки.
	GetTechnicians(ctx context.Context) ([]dto.UserDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error)
}

type UserService struct {
	userRepository repositories.UserRepositoryInterface
	teamRepository repositories.TeamRepositoryInterface
	logger         *zap.Logger
}

func NewUserService(
	userRepository repositories.UserRepositoryInterface,
	teamRepository repositories.TeamRepositoryInterface,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{
		userRepository: userRepository,
		teamRepository: teamRepository,
		logger:         logger,
	}
}

func userEntityToDTO(entity entities.User) dto.UserDTO {
	return dto.UserDTO{
		ID:     entity.ID,
		Name:   entity.Name,
		Role:   entity.Role,
		Avatar: entity.Avatar,
		TeamID: entity.TeamID,
	}
}

func userEntityToShortDTO(entity *entities.User) *dto.ShortUserDTO {
	if entity == nil {
		return nil
	}
	return &dto.ShortUserDTO{
		ID:     entity.ID,
		Name:   entity.Name,
		Role:   entity.Role,
		Avatar: entity.Avatar,
	}
}

func userEntitiesToDTOs(users []entities.User) []dto.UserDTO {
	return lo.Map(users, func(u entities.User, _ int) dto.UserDTO { return userEntityToDTO(u) })
}

func (s *UserService) GetUsers(ctx context.Context) ([]dto.UserDTO, error) {
	users, err := s.userRepository.GetUsers(ctx, nil)
	if err != nil {
		return nil, err
	}
	return userEntitiesToDTOs(users), nil
}

func (s *UserService) GetTechnicians(ctx context.Context) ([]dto.UserDTO, error) {
	users, err := s.userRepository.GetUsers(ctx, constants.AssignableRoles)
	if err != nil {
		return nil, err
	}
	return userEntitiesToDTOs(users), nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, apperrors.NewInvalidInputError("Имя пользователя обязательно")
	}

	role := payload.Role
	if role == "" {
		role = constants.RoleEmployee
	}
	if !constants.Contains(constants.Roles, role) {
		return nil, apperrors.NewInvalidInputError("Недопустимая роль: %s", role)
	}

	if payload.TeamID.Valid() {
		if _, err := s.teamRepository.FindTeam(ctx, payload.TeamID.Value()); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewInvalidInputError("Команда с id %d не найдена", payload.TeamID.Value())
			}
			return nil, err
		}
	}

	created, err := s.userRepository.CreateUser(ctx, nil, entities.User{
		Name:   name,
		Role:   role,
		Avatar: payload.Avatar,
		TeamID: payload.TeamID.ID,
	})
	if err != nil {
		s.logger.Error("Ошибка при создании пользователя", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Пользователь создан", zap.Uint64("id", created.ID), zap.String("role", created.Role))
	result := userEntityToDTO(*created)
	return &result, nil
}
