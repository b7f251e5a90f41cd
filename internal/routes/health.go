package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runHealthRouter(api *echo.Group, healthCtrl *controllers.HealthController) {
	api.GET("/health", healthCtrl.Health)
}
