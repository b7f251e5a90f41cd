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

const userTable = "users"

var userColumns = []string{"id", "name", "role", "avatar", "team_id", "created_at", "updated_at"}

type UserRepositoryInterface interface {
	// GetUsers возвращает пользователей; непустой roles ограничивает выборку этими ролями.
	GetUsers(ctx context.Context, roles []string) ([]entities.User, error)
	FindUser(ctx context.Context, tx pgx.Tx, id uint64) (*entities.User, error)
	CreateUser(ctx context.Context, tx pgx.Tx, user entities.User) (*entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Name, &u.Role, &u.Avatar, &u.TeamID, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, roles []string) ([]entities.User, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(userColumns...).
		From(userTable).
		OrderBy("id ASC")
	if len(roles) > 0 {
		builder = builder.Where(sq.Eq{"role": roles})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) FindUser(ctx context.Context, tx pgx.Tx, id uint64) (*entities.User, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(userColumns...).
		From(userTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(pick(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *UserRepository) CreateUser(ctx context.Context, tx pgx.Tx, user entities.User) (*entities.User, error) {
	query := `
		INSERT INTO users (name, role, avatar, team_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, name, role, avatar, team_id, created_at, updated_at
	`
	created, err := scanUser(pick(r.storage, tx).QueryRow(ctx, query, user.Name, user.Role, user.Avatar, user.TeamID))
	if err != nil {
		return nil, translatePgError(err)
	}
	return created, nil
}
