package routes

import (
	"gearguard/internal/controllers"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func registerUserRoutes(api *echo.Group, ctrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/users", authMW.Auth)
	g.GET("", ctrl.GetUsers)
	g.GET("/:id", ctrl.FindUser)
}
