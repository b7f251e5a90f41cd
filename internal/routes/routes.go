package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/eventbus"
)

type Loggers struct {
	Main        *zap.Logger
	Maintenance *zap.Logger
	Report      *zap.Logger
}

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, bus eventbus.Publisher, loggers *Loggers) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	txManager := repositories.NewTxManager(dbConn, loggers.Maintenance)

	// --- 1. РЕПОЗИТОРИИ ---
	teamRepo := repositories.NewTeamRepository(dbConn, loggers.Main)
	userRepo := repositories.NewUserRepository(dbConn, loggers.Main)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, loggers.Main)
	maintenanceRepo := repositories.NewMaintenanceRequestRepository(dbConn, loggers.Maintenance)
	reportRepo := repositories.NewReportRepository(dbConn)

	// --- 2. СЕРВИСЫ ---
	teamService := services.NewTeamService(teamRepo, loggers.Main)
	userService := services.NewUserService(userRepo, teamRepo, loggers.Main)
	equipmentService := services.NewEquipmentService(equipmentRepo, maintenanceRepo, loggers.Main)
	maintenanceService := services.NewMaintenanceService(txManager, maintenanceRepo, equipmentRepo, bus, loggers.Maintenance)
	reportService := services.NewReportService(reportRepo, maintenanceRepo, loggers.Report)

	// --- 3. КОНТРОЛЛЕРЫ ---
	teamController := controllers.NewTeamController(teamService, loggers.Main)
	userController := controllers.NewUserController(userService, loggers.Main)
	equipmentController := controllers.NewEquipmentController(equipmentService, loggers.Main)
	maintenanceController := controllers.NewMaintenanceController(maintenanceService, loggers.Maintenance)
	reportController := controllers.NewReportController(reportService, loggers.Report)
	healthController := controllers.NewHealthController(dbConn, loggers.Main)

	// --- 4. РОУТЕРЫ ---
	runHealthRouter(api, healthController)
	runTeamRouter(api, teamController)
	runUserRouter(api, userController)
	runEquipmentRouter(api, equipmentController)
	runReportRouter(api, reportController)
	runMaintenanceRouter(api, maintenanceController)

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено")
}
