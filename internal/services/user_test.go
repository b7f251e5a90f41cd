package services

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

func TestUserService_GetTechnicians(t *testing.T) {
	t.Parallel()

	users := &mockUserRepository{}
	svc := NewUserService(users, &mockTeamRepository{}, zap.NewNop())

	users.On("GetUsers", mock.Anything, constants.AssignableRoles).Return([]entities.User{
		{ID: 1, Name: gofakeit.Name(), Role: constants.RoleTechnician},
		{ID: 2, Name: gofakeit.Name(), Role: constants.RoleManager},
	}, nil).Once()

	res, err := svc.GetTechnicians(context.Background())

	require.NoError(t, err)
	require.Len(t, res, 2)
	for _, u := range res {
		assert.Contains(t, constants.AssignableRoles, u.Role)
	}
	users.AssertExpectations(t)
}

func TestUserService_CreateUser(t *testing.T) {
	t.Parallel()

	t.Run("default role is Employee", func(t *testing.T) {
		t.Parallel()
		users := &mockUserRepository{}
		svc := NewUserService(users, &mockTeamRepository{}, zap.NewNop())

		name := gofakeit.Name()
		users.On("CreateUser", mock.Anything, mock.Anything, mock.MatchedBy(func(u entities.User) bool {
			return u.Name == name && u.Role == constants.RoleEmployee && !u.TeamID.Valid
		})).Return(&entities.User{ID: 3, Name: name, Role: constants.RoleEmployee}, nil).Once()

		res, err := svc.CreateUser(context.Background(), dto.CreateUserDTO{Name: name})

		require.NoError(t, err)
		assert.Equal(t, uint64(3), res.ID)
		assert.Equal(t, constants.RoleEmployee, res.Role)
	})

	t.Run("unknown team is a validation error", func(t *testing.T) {
		t.Parallel()
		users := &mockUserRepository{}
		teams := &mockTeamRepository{}
		svc := NewUserService(users, teams, zap.NewNop())

		teams.On("FindTeam", mock.Anything, uint64(77)).Return((*entities.Team)(nil), apperrors.ErrTeamNotFound).Once()

		res, err := svc.CreateUser(context.Background(), dto.CreateUserDTO{
			Name:   gofakeit.Name(),
			TeamID: types.OptionalIDFrom(77),
		})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Nil(t, res)
		users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTeamService_CreateTeam(t *testing.T) {
	t.Parallel()

	t.Run("blank name", func(t *testing.T) {
		t.Parallel()
		svc := NewTeamService(&mockTeamRepository{}, zap.NewNop())

		_, err := svc.CreateTeam(context.Background(), dto.CreateTeamDTO{Name: "  "})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		teams := &mockTeamRepository{}
		svc := NewTeamService(teams, zap.NewNop())

		name := gofakeit.Company()
		teams.On("CreateTeam", mock.Anything, mock.Anything, entities.Team{Name: name}).
			Return(&entities.Team{ID: 4, Name: name}, nil).Once()

		res, err := svc.CreateTeam(context.Background(), dto.CreateTeamDTO{Name: " " + name + " "})

		require.NoError(t, err)
		assert.Equal(t, uint64(4), res.ID)
		assert.Equal(t, name, res.Name)
	})
}
