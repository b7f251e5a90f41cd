package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runMaintenanceRouter(api *echo.Group, maintenanceCtrl *controllers.MaintenanceController) {
	api.GET("/maintenance", maintenanceCtrl.GetRequests)
	api.POST("/maintenance", maintenanceCtrl.CreateRequest)
	api.PATCH("/maintenance/:id/stage", maintenanceCtrl.TransitionStage)
}
