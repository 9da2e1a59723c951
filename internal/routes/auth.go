package routes

import (
	"gearguard/internal/controllers"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func registerAuthRoutes(api *echo.Group, ctrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/auth")
	g.POST("/login", ctrl.Login)
	g.POST("/refresh", ctrl.Refresh)
	g.GET("/me", ctrl.Me, authMW.Auth)
}
