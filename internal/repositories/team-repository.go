package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
)

const teamTable = "teams"

type TeamRepositoryInterface interface {
	GetTeams(ctx context.Context) ([]entities.Team, error)
	FindTeam(ctx context.Context, id uint64) (*entities.Team, error)
	CreateTeam(ctx context.Context, tx pgx.Tx, team entities.Team) (*entities.Team, error)
}

type TeamRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTeamRepository(storage *pgxpool.Pool, logger *zap.Logger) TeamRepositoryInterface {
	return &TeamRepository{storage: storage, logger: logger}
}

func scanTeam(row pgx.Row) (*entities.Team, error) {
	var t entities.Team
	err := row.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования team: %w", err)
	}
	return &t, nil
}

func (r *TeamRepository) GetTeams(ctx context.Context) ([]entities.Team, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id", "name", "created_at", "updated_at").
		From(teamTable).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]entities.Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *t)
	}
	return teams, rows.Err()
}

func (r *TeamRepository) FindTeam(ctx context.Context, id uint64) (*entities.Team, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id", "name", "created_at", "updated_at").
		From(teamTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanTeam(r.storage.QueryRow(ctx, query, args...))
}

func (r *TeamRepository) CreateTeam(ctx context.Context, tx pgx.Tx, team entities.Team) (*entities.Team, error) {
	query := `
		INSERT INTO teams (name, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		RETURNING id, name, created_at, updated_at
	`
	created, err := scanTeam(pick(r.storage, tx).QueryRow(ctx, query, team.Name))
	if err != nil {
		return nil, translatePgError(err)
	}
	return created, nil
}
