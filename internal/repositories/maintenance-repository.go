package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	db "gearguard/internal/infrastructure/bd"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

const maintenanceRequestTable = "maintenance_requests"

var maintenanceRequestMap = map[string]string{
	"id":            "mr.id",
	"equipmentId":   "mr.equipment_id",
	"teamId":        "mr.team_id",
	"technicianId":  "mr.technician_id",
	"createdById":   "mr.created_by_id",
	"stage":         "mr.stage",
	"type":          "mr.type",
	"priority":      "mr.priority",
	"scheduledDate": "mr.scheduled_date",
	"createdAt":     "mr.created_at",
	"updatedAt":     "mr.updated_at",
}

var maintenanceRequestColumns = []string{
	"mr.id", "mr.subject", "mr.type", "mr.description", "mr.priority", "mr.stage",
	"mr.scheduled_date", "mr.duration", "mr.completion_date",
	"mr.equipment_id", "mr.team_id", "mr.technician_id", "mr.created_by_id",
	"mr.created_at", "mr.updated_at",
}

var maintenanceRequestRelationColumns = []string{
	"COALESCE(e.id, 0)", "COALESCE(e.name, '')", "e.serial_number", "e.category", "e.location", "e.department", "COALESCE(e.status, '')",
	"COALESCE(t.id, 0)", "COALESCE(t.name, '')",
	"COALESCE(tu.id, 0)", "COALESCE(tu.name, '')", "COALESCE(tu.role, '')", "tu.avatar",
	"COALESCE(cu.id, 0)", "COALESCE(cu.name, '')", "COALESCE(cu.role, '')", "cu.avatar",
}

type MaintenanceRequestRepositoryInterface interface {
	GetRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, error)
	// FindRequest возвращает заявку вместе с оборудованием, командой и пользователями.
	FindRequest(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceRequest, error)
	// FindRequestForUpdate блокирует строку заявки до конца транзакции.
	FindRequestForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceRequest, error)
	CreateRequest(ctx context.Context, tx pgx.Tx, req entities.MaintenanceRequest) (uint64, error)
	UpdateRequest(ctx context.Context, tx pgx.Tx, req entities.MaintenanceRequest) error
	CountOpenRequestsByEquipment(ctx context.Context, equipmentID uint64) (uint64, error)
}

type MaintenanceRequestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewMaintenanceRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) MaintenanceRequestRepositoryInterface {
	return &MaintenanceRequestRepository{storage: storage, logger: logger}
}

func maintenanceRequestSelect() sq.SelectBuilder {
	columns := append(append([]string{}, maintenanceRequestColumns...), maintenanceRequestRelationColumns...)
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(columns...).
		From(maintenanceRequestTable + " AS mr").
		LeftJoin("equipments e ON mr.equipment_id = e.id").
		LeftJoin("teams t ON mr.team_id = t.id").
		LeftJoin("users tu ON mr.technician_id = tu.id").
		LeftJoin("users cu ON mr.created_by_id = cu.id")
}

func requestScanTargets(m *entities.MaintenanceRequest) []interface{} {
	return []interface{}{
		&m.ID, &m.Subject, &m.Type, &m.Description, &m.Priority, &m.Stage,
		&m.ScheduledDate, &m.Duration, &m.CompletionDate,
		&m.EquipmentID, &m.TeamID, &m.TechnicianID, &m.CreatedByID,
		&m.CreatedAt, &m.UpdatedAt,
	}
}

func scanMaintenanceRequest(row pgx.Row) (*entities.MaintenanceRequest, error) {
	var m entities.MaintenanceRequest
	var eq entities.Equipment
	var team entities.Team
	var tech, creator entities.User
	var techAvatar, creatorAvatar null.String

	targets := append(requestScanTargets(&m),
		&eq.ID, &eq.Name, &eq.SerialNumber, &eq.Category, &eq.Location, &eq.Department, &eq.Status,
		&team.ID, &team.Name,
		&tech.ID, &tech.Name, &tech.Role, &techAvatar,
		&creator.ID, &creator.Name, &creator.Role, &creatorAvatar,
	)

	err := row.Scan(targets...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования maintenance request: %w", err)
	}

	if eq.ID > 0 {
		m.Equipment = &eq
	}
	if team.ID > 0 {
		m.Team = &team
	}
	if tech.ID > 0 {
		tech.Avatar = techAvatar
		m.Technician = &tech
	}
	if creator.ID > 0 {
		creator.Avatar = creatorAvatar
		m.CreatedBy = &creator
	}
	return &m, nil
}

func (r *MaintenanceRequestRepository) GetRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, error) {
	filter, err := normalizeIDFilters(filter, "id", "equipmentId", "teamId", "technicianId", "createdById")
	if err != nil {
		return nil, err
	}

	builder := maintenanceRequestSelect()
	if filter.Search != "" {
		builder = builder.Where(sq.ILike{"mr.subject": "%" + filter.Search + "%"})
	}
	if !db.HasSort(filter, maintenanceRequestMap) {
		builder = builder.OrderBy("mr.created_at DESC", "mr.id DESC")
	}
	builder = db.ApplyListParams(builder, filter, maintenanceRequestMap)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]entities.MaintenanceRequest, 0)
	for rows.Next() {
		m, err := scanMaintenanceRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *m)
	}
	return requests, rows.Err()
}

func (r *MaintenanceRequestRepository) FindRequest(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceRequest, error) {
	query, args, err := maintenanceRequestSelect().Where(sq.Eq{"mr.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanMaintenanceRequest(pick(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *MaintenanceRequestRepository) FindRequestForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceRequest, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(maintenanceRequestColumns...).
		From(maintenanceRequestTable + " AS mr").
		Where(sq.Eq{"mr.id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, err
	}

	var m entities.MaintenanceRequest
	err = pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(requestScanTargets(&m)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка блокировки заявки %d: %w", id, err)
	}
	return &m, nil
}

func (r *MaintenanceRequestRepository) CreateRequest(ctx context.Context, tx pgx.Tx, req entities.MaintenanceRequest) (uint64, error) {
	query := `
		INSERT INTO maintenance_requests (
			subject, type, description, priority, stage, scheduled_date, duration, completion_date,
			equipment_id, team_id, technician_id, created_by_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id
	`
	var newID uint64
	err := pick(r.storage, tx).QueryRow(ctx, query,
		req.Subject, req.Type, req.Description, req.Priority, req.Stage,
		req.ScheduledDate, req.Duration, req.CompletionDate,
		req.EquipmentID, req.TeamID, req.TechnicianID, req.CreatedByID,
	).Scan(&newID)
	if err != nil {
		return 0, translatePgError(err)
	}
	return newID, nil
}

func (r *MaintenanceRequestRepository) UpdateRequest(ctx context.Context, tx pgx.Tx, req entities.MaintenanceRequest) error {
	query := `
		UPDATE maintenance_requests
		SET stage = $1, duration = $2, technician_id = $3, completion_date = $4, updated_at = NOW()
		WHERE id = $5
	`
	result, err := pick(r.storage, tx).Exec(ctx, query,
		req.Stage, req.Duration, req.TechnicianID, req.CompletionDate, req.ID,
	)
	if err != nil {
		return translatePgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}
	return nil
}

func (r *MaintenanceRequestRepository) CountOpenRequestsByEquipment(ctx context.Context, equipmentID uint64) (uint64, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("COUNT(*)").
		From(maintenanceRequestTable).
		Where(sq.Eq{"equipment_id": equipmentID}).
		Where(sq.NotEq{"stage": constants.ClosedStages}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчета открытых заявок: %w", err)
	}
	return count, nil
}
