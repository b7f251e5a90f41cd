package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runUserRouter(api *echo.Group, userCtrl *controllers.UserController) {
	api.GET("/users", userCtrl.GetUsers)
	api.GET("/users/technicians", userCtrl.GetTechnicians)
	api.POST("/users", userCtrl.CreateUser)
}
