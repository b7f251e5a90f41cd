package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"gearguard/internal/migrator"
	"gearguard/migrations"
	"gearguard/pkg/config"
	"gearguard/pkg/database/postgresql"
	applogger "gearguard/pkg/logger"
	"gearguard/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runMigrate := flag.Bool("migrate", true, "Применить миграции перед наполнением")
	runReset := flag.Bool("reset", false, "Очистить все таблицы перед наполнением")
	runDemo := flag.Bool("demo", true, "Создать демо-команды, пользователей и оборудование")
	flag.Parse()

	cfg := config.MustNew()
	logger := applogger.NewLogger(cfg.Logger)
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)

	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN, logger)
	defer dbPool.Close()

	ctx := context.Background()

	if *runMigrate {
		m := migrator.FromPool(dbPool, migrations.FS, logger.Named("migrator"))
		if err := m.Up(); err != nil {
			logger.Fatal("❌ Ошибка применения миграций", zap.Error(err))
		}
		_ = m.Close()
	}

	if *runReset {
		if err := seeders.Reset(ctx, dbPool); err != nil {
			logger.Fatal("❌ Ошибка очистки таблиц", zap.Error(err))
		}
	}

	if *runDemo {
		if err := seeders.SeedDemoData(ctx, dbPool); err != nil {
			logger.Fatal("❌ Ошибка наполнения демо-данными", zap.Error(err))
		}
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
