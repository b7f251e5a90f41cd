package services

import (
	"context"
	"math"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	"gearguard/pkg/types"
)

type ReportServiceInterface interface {
	GetStats(ctx context.Context) (*dto.MaintenanceStatsDTO, error)
	ComputeTeamStats(ctx context.Context) ([]dto.StatItemDTO, error)
	ComputeCategoryStats(ctx context.Context) ([]dto.StatItemDTO, error)
	ComputeKpis(ctx context.Context) (*dto.MaintenanceKpiDTO, error)
	// GetRequestsForExport - заявки для выгрузки в Excel, с теми же фильтрами, что и список.
	GetRequestsForExport(ctx context.Context, filter types.Filter) ([]dto.MaintenanceRequestDTO, error)
}

type reportService struct {
	reportRepo      repositories.ReportRepositoryInterface
	maintenanceRepo repositories.MaintenanceRequestRepositoryInterface
	logger          *zap.Logger
}

func NewReportService(
	reportRepo repositories.ReportRepositoryInterface,
	maintenanceRepo repositories.MaintenanceRequestRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &reportService{
		reportRepo:      reportRepo,
		maintenanceRepo: maintenanceRepo,
		logger:          logger,
	}
}

func statItemsToDTOs(items []entities.StatItem) []dto.StatItemDTO {
	if items == nil {
		return []dto.StatItemDTO{}
	}
	return lo.Map(items, func(item entities.StatItem, _ int) dto.StatItemDTO {
		return dto.StatItemDTO{Name: item.Name, Count: item.Count}
	})
}

func (s *reportService) GetStats(ctx context.Context) (*dto.MaintenanceStatsDTO, error) {
	teamStats, err := s.ComputeTeamStats(ctx)
	if err != nil {
		return nil, err
	}
	categoryStats, err := s.ComputeCategoryStats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.MaintenanceStatsDTO{TeamStats: teamStats, CategoryStats: categoryStats}, nil
}

func (s *reportService) ComputeTeamStats(ctx context.Context) ([]dto.StatItemDTO, error) {
	items, err := s.reportRepo.GetTeamStats(ctx)
	if err != nil {
		s.logger.Error("Ошибка при расчете статистики по командам", zap.Error(err))
		return nil, err
	}
	return statItemsToDTOs(items), nil
}

func (s *reportService) ComputeCategoryStats(ctx context.Context) ([]dto.StatItemDTO, error) {
	items, err := s.reportRepo.GetCategoryStats(ctx)
	if err != nil {
		s.logger.Error("Ошибка при расчете статистики по категориям", zap.Error(err))
		return nil, err
	}
	return statItemsToDTOs(items), nil
}

func (s *reportService) ComputeKpis(ctx context.Context) (*dto.MaintenanceKpiDTO, error) {
	requests, err := s.reportRepo.GetStageDurations(ctx)
	if err != nil {
		s.logger.Error("Ошибка при расчете KPI", zap.Error(err))
		return nil, err
	}
	kpi := CalculateKpis(requests)
	return &kpi, nil
}

// CalculateKpis: среднее время ремонта считается только по заявкам в этапе Repaired
// и округляется до одного знака; без таких заявок оно равно 0.
func CalculateKpis(requests []entities.MaintenanceRequest) dto.MaintenanceKpiDTO {
	open := lo.CountBy(requests, func(r entities.MaintenanceRequest) bool {
		return !constants.IsClosedStage(r.Stage)
	})

	repaired := lo.Filter(requests, func(r entities.MaintenanceRequest, _ int) bool {
		return r.Stage == constants.StageRepaired
	})

	avg := 0.0
	if len(repaired) > 0 {
		total := lo.SumBy(repaired, func(r entities.MaintenanceRequest) float64 { return r.Duration })
		avg = math.Round(total/float64(len(repaired))*10) / 10
	}

	return dto.MaintenanceKpiDTO{
		TotalRequests:     len(requests),
		OpenRequests:      open,
		AvgRepairDuration: avg,
	}
}

func (s *reportService) GetRequestsForExport(ctx context.Context, filter types.Filter) ([]dto.MaintenanceRequestDTO, error) {
	requests, err := s.maintenanceRepo.GetRequests(ctx, filter)
	if err != nil {
		return nil, err
	}
	return requestEntitiesToDTOs(requests, time.Now()), nil
}
