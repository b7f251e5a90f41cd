package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"gearguard/internal/entities"
	"gearguard/pkg/constants"
)

type ReportRepositoryInterface interface {
	// GetTeamStats группирует заявки по названию команды. Заявки без команды не попадают в выборку.
	GetTeamStats(ctx context.Context) ([]entities.StatItem, error)
	// GetCategoryStats группирует заявки по категории оборудования.
	GetCategoryStats(ctx context.Context) ([]entities.StatItem, error)
	// GetStageDurations возвращает этап и длительность каждой заявки для расчета KPI.
	GetStageDurations(ctx context.Context) ([]entities.MaintenanceRequest, error)
}

type reportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepositoryInterface {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetTeamStats(ctx context.Context) ([]entities.StatItem, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("t.name", "COUNT(mr.id)").
		From("maintenance_requests mr").
		Join("teams t ON mr.team_id = t.id").
		GroupBy("t.name").
		OrderBy("t.name ASC")

	return r.queryStats(ctx, builder)
}

func (r *reportRepository) GetCategoryStats(ctx context.Context) ([]entities.StatItem, error) {
	category := fmt.Sprintf("COALESCE(NULLIF(TRIM(e.category), ''), '%s')", constants.UncategorizedLabel)

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(category+" AS category", "COUNT(mr.id)").
		From("maintenance_requests mr").
		Join("equipments e ON mr.equipment_id = e.id").
		GroupBy("1").
		OrderBy("1 ASC")

	return r.queryStats(ctx, builder)
}

func (r *reportRepository) queryStats(ctx context.Context, builder sq.SelectBuilder) ([]entities.StatItem, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса статистики: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса статистики: %w", err)
	}
	defer rows.Close()

	items := make([]entities.StatItem, 0)
	for rows.Next() {
		var item entities.StatItem
		if err := rows.Scan(&item.Name, &item.Count); err != nil {
			return nil, fmt.Errorf("ошибка сканирования статистики: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *reportRepository) GetStageDurations(ctx context.Context) ([]entities.MaintenanceRequest, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id", "stage", "duration").
		From(maintenanceRequestTable).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки заявок для KPI: %w", err)
	}
	defer rows.Close()

	result := make([]entities.MaintenanceRequest, 0)
	for rows.Next() {
		var m entities.MaintenanceRequest
		if err := rows.Scan(&m.ID, &m.Stage, &m.Duration); err != nil {
			return nil, fmt.Errorf("ошибка сканирования заявки для KPI: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
