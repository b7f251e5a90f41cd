package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runEquipmentRouter(api *echo.Group, equipmentCtrl *controllers.EquipmentController) {
	api.GET("/equipment", equipmentCtrl.GetEquipments)
	api.GET("/equipment/:id", equipmentCtrl.FindEquipment)
	api.POST("/equipment", equipmentCtrl.CreateEquipment)
}
