package migrator

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

type Migrator struct {
	db     *sql.DB
	fsys   fs.FS
	logger *zap.Logger
}

func NewMigrator(db *sql.DB, fsys fs.FS, logger *zap.Logger) *Migrator {
	return &Migrator{
		db:     db,
		fsys:   fsys,
		logger: logger,
	}
}

// FromPool открывает database/sql поверх пула pgx: goose работает только с *sql.DB.
func FromPool(pool *pgxpool.Pool, fsys fs.FS, logger *zap.Logger) *Migrator {
	return NewMigrator(stdlib.OpenDBFromPool(pool), fsys, logger)
}

func (m *Migrator) Up() error {
	goose.SetBaseFS(m.fsys)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose: не удалось выбрать диалект: %w", err)
	}
	if err := goose.Up(m.db, "."); err != nil {
		return fmt.Errorf("goose: ошибка применения миграций: %w", err)
	}

	version, err := goose.GetDBVersion(m.db)
	if err == nil {
		m.logger.Info("Миграции применены", zap.Int64("version", version))
	}
	return nil
}

func (m *Migrator) Close() error {
	return m.db.Close()
}
