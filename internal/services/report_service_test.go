package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/pkg/constants"
)

func TestCalculateKpis(t *testing.T) {
	t.Parallel()

	req := func(stage string, duration float64) entities.MaintenanceRequest {
		return entities.MaintenanceRequest{Stage: stage, Duration: duration}
	}

	tests := []struct {
		name      string
		requests  []entities.MaintenanceRequest
		wantTotal int
		wantOpen  int
		wantAvg   float64
	}{
		{
			name:      "empty set",
			requests:  nil,
			wantTotal: 0,
			wantOpen:  0,
			wantAvg:   0,
		},
		{
			name: "no repaired requests gives zero average",
			requests: []entities.MaintenanceRequest{
				req(constants.StageNew, 3),
				req(constants.StageInProgress, 5),
				req(constants.StageScrap, 8),
			},
			wantTotal: 3,
			wantOpen:  2,
			wantAvg:   0,
		},
		{
			name: "average is rounded to one decimal",
			requests: []entities.MaintenanceRequest{
				req(constants.StageRepaired, 1),
				req(constants.StageRepaired, 2),
				req(constants.StageRepaired, 2),
				req(constants.StageNew, 100),
			},
			wantTotal: 4,
			wantOpen:  1,
			wantAvg:   1.7,
		},
		{
			name: "missing duration counts as zero",
			requests: []entities.MaintenanceRequest{
				req(constants.StageRepaired, 0),
				req(constants.StageRepaired, 2.5),
			},
			wantTotal: 2,
			wantOpen:  0,
			wantAvg:   1.3,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := CalculateKpis(tc.requests)
			assert.Equal(t, tc.wantTotal, got.TotalRequests)
			assert.Equal(t, tc.wantOpen, got.OpenRequests)
			assert.InDelta(t, tc.wantAvg, got.AvgRepairDuration, 1e-9)
		})
	}
}

func TestReportService_GetStats(t *testing.T) {
	t.Parallel()

	t.Run("empty request set renders empty arrays", func(t *testing.T) {
		t.Parallel()
		repo := &mockReportRepository{}
		repo.On("GetTeamStats", mock.Anything).Return([]entities.StatItem(nil), nil).Once()
		repo.On("GetCategoryStats", mock.Anything).Return([]entities.StatItem{}, nil).Once()

		svc := NewReportService(repo, &mockMaintenanceRepository{}, zap.NewNop())
		stats, err := svc.GetStats(context.Background())
		require.NoError(t, err)

		body, err := json.Marshal(stats)
		require.NoError(t, err)
		assert.JSONEq(t, `{"teamStats":[],"categoryStats":[]}`, string(body))
	})

	t.Run("items are passed through", func(t *testing.T) {
		t.Parallel()
		repo := &mockReportRepository{}
		repo.On("GetTeamStats", mock.Anything).Return([]entities.StatItem{
			{Name: "Mechanics", Count: 3},
			{Name: "IT Support", Count: 1},
		}, nil).Once()
		repo.On("GetCategoryStats", mock.Anything).Return([]entities.StatItem{
			{Name: constants.UncategorizedLabel, Count: 2},
			{Name: "Computers", Count: 2},
		}, nil).Once()

		svc := NewReportService(repo, &mockMaintenanceRepository{}, zap.NewNop())
		stats, err := svc.GetStats(context.Background())
		require.NoError(t, err)

		require.Len(t, stats.TeamStats, 2)
		assert.Equal(t, "Mechanics", stats.TeamStats[0].Name)
		assert.Equal(t, int64(3), stats.TeamStats[0].Count)

		var total int64
		for _, item := range stats.CategoryStats {
			total += item.Count
		}
		assert.Equal(t, int64(4), total)
	})

	t.Run("repository error", func(t *testing.T) {
		t.Parallel()
		repo := &mockReportRepository{}
		repo.On("GetTeamStats", mock.Anything).Return([]entities.StatItem(nil), errors.New("db down")).Once()

		svc := NewReportService(repo, &mockMaintenanceRepository{}, zap.NewNop())
		stats, err := svc.GetStats(context.Background())
		assert.ErrorContains(t, err, "db down")
		assert.Nil(t, stats)
		repo.AssertNotCalled(t, "GetCategoryStats", mock.Anything)
	})
}

func TestReportService_ComputeKpis(t *testing.T) {
	t.Parallel()

	repo := &mockReportRepository{}
	repo.On("GetStageDurations", mock.Anything).Return([]entities.MaintenanceRequest{
		{Stage: constants.StageRepaired, Duration: 2.5},
		{Stage: constants.StageNew},
	}, nil).Once()

	svc := NewReportService(repo, &mockMaintenanceRepository{}, zap.NewNop())
	kpi, err := svc.ComputeKpis(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, kpi.TotalRequests)
	assert.Equal(t, 1, kpi.OpenRequests)
	assert.Equal(t, 2.5, kpi.AvgRepairDuration)
}
