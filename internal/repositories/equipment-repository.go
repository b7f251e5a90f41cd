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
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

const equipmentTable = "equipments"

// Разрешенные поля filter[...] и sort[...]
var equipmentMap = map[string]string{
	"id":                "e.id",
	"name":              "e.name",
	"department":        "e.department",
	"location":          "e.location",
	"category":          "e.category",
	"status":            "e.status",
	"maintenanceTeamId": "e.maintenance_team_id",
	"purchaseDate":      "e.purchase_date",
	"createdAt":         "e.created_at",
}

var equipmentSelectColumns = []string{
	"e.id", "e.name", "e.serial_number", "e.purchase_date", "e.warranty_expiration",
	"e.location", "e.department", "e.category", "e.status",
	"e.maintenance_team_id", "e.technician_id", "e.owner_id",
	"e.created_at", "e.updated_at",
	"COALESCE(t.id, 0)", "COALESCE(t.name, '')",
	"COALESCE(tu.id, 0)", "COALESCE(tu.name, '')", "COALESCE(tu.role, '')", "tu.avatar",
	"COALESCE(ou.id, 0)", "COALESCE(ou.name, '')", "COALESCE(ou.role, '')", "ou.avatar",
}

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, tx pgx.Tx, equipment entities.Equipment) (uint64, error)
	UpdateEquipmentStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func equipmentSelect() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(equipmentSelectColumns...).
		From(equipmentTable + " AS e").
		LeftJoin("teams t ON e.maintenance_team_id = t.id").
		LeftJoin("users tu ON e.technician_id = tu.id").
		LeftJoin("users ou ON e.owner_id = ou.id")
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	var team entities.Team
	var tech, owner entities.User
	var techAvatar, ownerAvatar null.String

	err := row.Scan(
		&e.ID, &e.Name, &e.SerialNumber, &e.PurchaseDate, &e.WarrantyExpiration,
		&e.Location, &e.Department, &e.Category, &e.Status,
		&e.MaintenanceTeamID, &e.TechnicianID, &e.OwnerID,
		&e.CreatedAt, &e.UpdatedAt,
		&team.ID, &team.Name,
		&tech.ID, &tech.Name, &tech.Role, &techAvatar,
		&owner.ID, &owner.Name, &owner.Role, &ownerAvatar,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrEquipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования equipment: %w", err)
	}

	if team.ID > 0 {
		e.MaintenanceTeam = &team
	}
	if tech.ID > 0 {
		tech.Avatar = techAvatar
		e.Technician = &tech
	}
	if owner.ID > 0 {
		owner.Avatar = ownerAvatar
		e.Owner = &owner
	}
	return &e, nil
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, error) {
	filter, err := normalizeIDFilters(filter, "id", "maintenanceTeamId")
	if err != nil {
		return nil, err
	}

	builder := equipmentSelect()
	if filter.Search != "" {
		pat := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"e.name": pat},
			sq.ILike{"e.serial_number": pat},
		})
	}
	if !db.HasSort(filter, equipmentMap) {
		builder = builder.OrderBy("e.id ASC")
	}
	builder = db.ApplyListParams(builder, filter, equipmentMap)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	equipments := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		equipments = append(equipments, *e)
	}
	return equipments, rows.Err()
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	query, args, err := equipmentSelect().Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanEquipment(pick(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, tx pgx.Tx, equipment entities.Equipment) (uint64, error) {
	query := `
		INSERT INTO equipments (
			name, serial_number, purchase_date, warranty_expiration, location, department, category,
			status, maintenance_team_id, technician_id, owner_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id
	`
	var newID uint64
	err := pick(r.storage, tx).QueryRow(ctx, query,
		equipment.Name, equipment.SerialNumber, equipment.PurchaseDate, equipment.WarrantyExpiration,
		equipment.Location, equipment.Department, equipment.Category, equipment.Status,
		equipment.MaintenanceTeamID, equipment.TechnicianID, equipment.OwnerID,
	).Scan(&newID)
	if err != nil {
		return 0, translatePgError(err)
	}
	return newID, nil
}

func (r *EquipmentRepository) UpdateEquipmentStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	query := `UPDATE equipments SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := pick(r.storage, tx).Exec(ctx, query, status, id)
	if err != nil {
		return translatePgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEquipmentNotFound
	}
	return nil
}
