package routes

import (
	"gearguard/internal/controllers"
	"gearguard/pkg/constants"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func registerSLARoutes(api *echo.Group, ctrl *controllers.SLAController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/slas", authMW.Auth)
	g.GET("", ctrl.GetSLAs)
	g.GET("/match", ctrl.MatchSLA)
	g.GET("/:id", ctrl.FindSLA)

	manager := authMW.RequireRole(constants.RoleManager)
	g.POST("", ctrl.CreateSLA, manager)
	g.PUT("/:id", ctrl.UpdateSLA, manager)
	g.DELETE("/:id", ctrl.DeleteSLA, manager)
}
