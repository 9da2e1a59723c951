package routes

import (
	"gearguard/internal/controllers"
	"gearguard/pkg/constants"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func registerRequestRoutes(api *echo.Group, ctrl *controllers.RequestController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/requests", authMW.Auth)
	g.GET("", ctrl.GetRequests)
	g.GET("/kanban", ctrl.GetKanbanBoard)
	g.GET("/calendar", ctrl.GetCalendar)
	g.GET("/:id", ctrl.FindRequest)

	// Any authenticated user can raise a request; moving it through the
	// lifecycle is for technicians and managers.
	g.POST("", ctrl.CreateRequest)
	g.PUT("/:id", ctrl.UpdateRequest, authMW.RequireRole(constants.RoleTechnician, constants.RoleManager))
	g.DELETE("/:id", ctrl.DeleteRequest, authMW.RequireRole(constants.RoleManager))
}
