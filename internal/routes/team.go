package routes

import (
	"gearguard/internal/controllers"
	"gearguard/pkg/constants"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func registerTeamRoutes(api *echo.Group, ctrl *controllers.TeamController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/teams", authMW.Auth)
	g.GET("", ctrl.GetTeams)
	g.GET("/:id", ctrl.FindTeam)

	manager := authMW.RequireRole(constants.RoleManager)
	g.POST("", ctrl.CreateTeam, manager)
	g.PUT("/:id", ctrl.UpdateTeam, manager)
	g.POST("/:id/members", ctrl.AddMember, manager)
	g.DELETE("/:id/members/:userId", ctrl.RemoveMember, manager)
	g.DELETE("/:id", ctrl.DeleteTeam, manager)
}
