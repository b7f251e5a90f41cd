package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runReportRouter(api *echo.Group, reportCtrl *controllers.ReportController) {
	api.GET("/maintenance/stats", reportCtrl.GetStats)
	api.GET("/maintenance/kpis", reportCtrl.GetKpis)
	api.GET("/maintenance/export", reportCtrl.Export)
}
