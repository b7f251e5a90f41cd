package services

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"gearguard/internal/entities"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/types"
)

// fakeTxManager выполняет fn без реальной транзакции.
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	m.calls++
	return fn(nil)
}

type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (b *recordingBus) Publish(_ context.Context, event eventbus.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.events))
	for _, e := range b.events {
		names = append(names, e.Name())
	}
	return names
}

type mockTeamRepository struct{ mock.Mock }

func (m *mockTeamRepository) GetTeams(ctx context.Context) ([]entities.Team, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Team), args.Error(1)
}

func (m *mockTeamRepository) FindTeam(ctx context.Context, id uint64) (*entities.Team, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *mockTeamRepository) CreateTeam(ctx context.Context, tx pgx.Tx, team entities.Team) (*entities.Team, error) {
	args := m.Called(ctx, tx, team)
	return args.Get(0).(*entities.Team), args.Error(1)
}

type mockUserRepository struct{ mock.Mock }

func (m *mockUserRepository) GetUsers(ctx context.Context, roles []string) ([]entities.User, error) {
	args := m.Called(ctx, roles)
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *mockUserRepository) FindUser(ctx context.Context, tx pgx.Tx, id uint64) (*entities.User, error) {
	args := m.Called(ctx, tx, id)
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, tx pgx.Tx, user entities.User) (*entities.User, error) {
	args := m.Called(ctx, tx, user)
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockEquipmentRepository struct{ mock.Mock }

func (m *mockEquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]entities.Equipment), args.Error(1)
}

func (m *mockEquipmentRepository) FindEquipment(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	args := m.Called(ctx, tx, id)
	return args.Get(0).(*entities.Equipment), args.Error(1)
}

func (m *mockEquipmentRepository) CreateEquipment(ctx context.Context, tx pgx.Tx, equipment entities.Equipment) (uint64, error) {
	args := m.Called(ctx, tx, equipment)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockEquipmentRepository) UpdateEquipmentStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	args := m.Called(ctx, tx, id, status)
	return args.Error(0)
}

type mockMaintenanceRepository struct{ mock.Mock }

func (m *mockMaintenanceRepository) GetRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]entities.MaintenanceRequest), args.Error(1)
}

func (m *mockMaintenanceRepository) FindRequest(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceRequest, error) {
	args := m.Called(ctx, tx, id)
	return args.Get(0).(*entities.MaintenanceRequest), args.Error(1)
}

func (m *mockMaintenanceRepository) FindRequestForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceRequest, error) {
	args := m.Called(ctx, tx, id)
	return args.Get(0).(*entities.MaintenanceRequest), args.Error(1)
}

func (m *mockMaintenanceRepository) CreateRequest(ctx context.Context, tx pgx.Tx, req entities.MaintenanceRequest) (uint64, error) {
	args := m.Called(ctx, tx, req)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockMaintenanceRepository) UpdateRequest(ctx context.Context, tx pgx.Tx, req entities.MaintenanceRequest) error {
	args := m.Called(ctx, tx, req)
	return args.Error(0)
}

func (m *mockMaintenanceRepository) CountOpenRequestsByEquipment(ctx context.Context, equipmentID uint64) (uint64, error) {
	args := m.Called(ctx, equipmentID)
	return args.Get(0).(uint64), args.Error(1)
}

type mockReportRepository struct{ mock.Mock }

func (m *mockReportRepository) GetTeamStats(ctx context.Context) ([]entities.StatItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.StatItem), args.Error(1)
}

func (m *mockReportRepository) GetCategoryStats(ctx context.Context) ([]entities.StatItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.StatItem), args.Error(1)
}

func (m *mockReportRepository) GetStageDurations(ctx context.Context) ([]entities.MaintenanceRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.MaintenanceRequest), args.Error(1)
}
