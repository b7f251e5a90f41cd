package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Reset очищает все таблицы и сбрасывает счетчики id.
func Reset(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Очистка таблиц...")
	_, err := db.Exec(ctx, "TRUNCATE TABLE maintenance_requests, equipments, users, teams RESTART IDENTITY CASCADE")
	return err
}

// SeedDemoData создает демонстрационные команды, пользователей и оборудование.
// Уже существующие записи (по имени или серийному номеру) пропускаются.
func SeedDemoData(ctx context.Context, db *pgxpool.Pool) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	teams, err := seedTeams(ctx, tx)
	if err != nil {
		return fmt.Errorf("команды: %w", err)
	}
	users, err := seedUsers(ctx, tx, teams)
	if err != nil {
		return fmt.Errorf("пользователи: %w", err)
	}
	if err := seedEquipments(ctx, tx, teams, users); err != nil {
		return fmt.Errorf("оборудование: %w", err)
	}

	return tx.Commit(ctx)
}

func seedTeams(ctx context.Context, tx pgx.Tx) (map[string]uint64, error) {
	log.Println("  - Наполнение таблицы 'teams'...")
	existing, err := mapAllIDsByName(ctx, tx, "teams")
	if err != nil {
		return nil, err
	}

	for _, name := range teamsData {
		if _, ok := existing[name]; ok {
			continue
		}
		var id uint64
		if err := tx.QueryRow(ctx, "INSERT INTO teams (name) VALUES ($1) RETURNING id", name).Scan(&id); err != nil {
			return nil, err
		}
		existing[name] = id
	}
	return existing, nil
}

func seedUsers(ctx context.Context, tx pgx.Tx, teams map[string]uint64) (map[string]uint64, error) {
	log.Println("  - Наполнение таблицы 'users'...")
	existing, err := mapAllIDsByName(ctx, tx, "users")
	if err != nil {
		return nil, err
	}

	for _, u := range usersData {
		if _, ok := existing[u.Name]; ok {
			continue
		}
		var id uint64
		err := tx.QueryRow(ctx,
			"INSERT INTO users (name, role, team_id) VALUES ($1, $2, $3) RETURNING id",
			u.Name, u.Role, optionalID(teams, u.TeamName),
		).Scan(&id)
		if err != nil {
			return nil, err
		}
		existing[u.Name] = id
	}
	return existing, nil
}

func seedEquipments(ctx context.Context, tx pgx.Tx, teams, users map[string]uint64) error {
	log.Println("  - Наполнение таблицы 'equipments'...")
	query := `INSERT INTO equipments (name, serial_number, category, location, status, maintenance_team_id, technician_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (serial_number) WHERE serial_number IS NOT NULL DO NOTHING`

	for _, e := range equipmentsData {
		_, err := tx.Exec(ctx, query,
			e.Name, e.SerialNumber, e.Category, e.Location, e.Status,
			optionalID(teams, e.TeamName), optionalID(users, e.TechnicianName),
		)
		if err != nil {
			log.Printf("Ошибка при вставке оборудования '%s': %v", e.Name, err)
			return err
		}
	}
	return nil
}

func optionalID(ids map[string]uint64, name string) *uint64 {
	if name == "" {
		return nil
	}
	id, ok := ids[name]
	if !ok {
		log.Printf("ПРЕДУПРЕЖДЕНИЕ: '%s' не найден, связь пропущена.", name)
		return nil
	}
	return &id
}

func mapAllIDsByName(ctx context.Context, tx pgx.Tx, table string) (map[string]uint64, error) {
	query := fmt.Sprintf("SELECT id, name FROM %s", table)
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resultMap := make(map[string]uint64)
	for rows.Next() {
		var id uint64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		resultMap[name] = id
	}
	return resultMap, rows.Err()
}
