package routes

import (
	"gearguard/internal/controllers"
	"gearguard/pkg/constants"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func registerAuditRoutes(api *echo.Group, ctrl *controllers.AuditController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/audit-logs", authMW.Auth, authMW.RequireRole(constants.RoleManager))
	g.GET("", ctrl.GetLogs)
	g.GET("/:entityType/:entityId", ctrl.GetLogsByEntity)
}
