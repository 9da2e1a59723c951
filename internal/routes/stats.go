package routes

import (
	"gearguard/internal/controllers"
	"gearguard/pkg/constants"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func registerStatsRoutes(api *echo.Group, ctrl *controllers.StatsController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/stats", authMW.Auth)
	g.GET("/dashboard", ctrl.GetDashboard)
	g.GET("/equipment", ctrl.GetEquipmentStats)
	g.GET("/requests", ctrl.GetRequestStats)
	g.GET("/requests/trend", ctrl.GetRequestTrend)
	g.GET("/costs", ctrl.GetCostSummary)
	g.GET("/sla-compliance", ctrl.GetSLACompliance)
	g.GET("/team-performance", ctrl.GetTeamPerformance)

	manager := authMW.RequireRole(constants.RoleManager)
	reports := api.Group("/reports", authMW.Auth, manager)
	reports.GET("/maintenance", ctrl.GetMaintenanceReport)
	reports.GET("/maintenance/export", ctrl.ExportMaintenanceReport)

	api.GET("/meta/enums", ctrl.GetEnums, authMW.Auth)
}
