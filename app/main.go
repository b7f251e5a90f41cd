// Файл: main.go

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"gearguard/internal/listeners"
	"gearguard/internal/migrator"
	"gearguard/internal/routes"
	"gearguard/migrations"
	"gearguard/pkg/config"
	"gearguard/pkg/customvalidator"
	"gearguard/pkg/database/postgresql"
	"gearguard/pkg/database/redisdb"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/eventbus"
	applogger "gearguard/pkg/logger"
	appmiddleware "gearguard/pkg/middleware"
	"gearguard/pkg/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger := applogger.NewLogger(cfg.Logger)
	defer func() { _ = logger.Sync() }()

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(appmiddleware.InjectLogger(logger))
	e.Use(appmiddleware.AccessLog(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.Server.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))
	e.Use(appmiddleware.RequestTimeout(cfg.Server.RequestTimeout))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Ошибка регистрации кастомных правил валидации", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN, logger)
	defer dbConn.Close()

	if cfg.Postgres.MigrationsAuto {
		m := migrator.FromPool(dbConn, migrations.FS, logger.Named("migrator"))
		if err := m.Up(); err != nil {
			logger.Fatal("Ошибка применения миграций", zap.Error(err))
		}
		_ = m.Close()
	}

	bus := eventbus.New(logger.Named("eventbus"))
	if cfg.Redis.Enabled() {
		redisClient, err := redisdb.Connect(context.Background(), cfg.Redis)
		if err != nil {
			logger.Warn("Redis недоступен, события не будут публиковаться", zap.Error(err))
		} else {
			defer redisClient.Close()
			listeners.NewRedisEventListener(redisClient, cfg.Redis.EventsChannel, logger.Named("redis-events")).Register(bus)
			logger.Info("✅ Подключено к Redis", zap.String("channel", cfg.Redis.EventsChannel))
		}
	}

	routes.InitRouter(e, dbConn, bus, &routes.Loggers{
		Main:        logger,
		Maintenance: logger.Named("maintenance"),
		Report:      logger.Named("report"),
	})

	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("address", cfg.Server.Address()))
		if err := e.Start(cfg.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Остановка сервера...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Ошибка при остановке сервера", zap.Error(err))
	}
	bus.Wait()
	logger.Info("Сервер остановлен")
}
