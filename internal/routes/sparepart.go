package routes

import (
	"gearguard/internal/controllers"
	"gearguard/pkg/constants"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func registerSparePartRoutes(api *echo.Group, ctrl *controllers.SparePartController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/spare-parts", authMW.Auth)
	g.GET("", ctrl.GetSpareParts)
	g.GET("/low-stock", ctrl.GetLowStockParts)
	g.GET("/:id", ctrl.FindSparePart)

	manager := authMW.RequireRole(constants.RoleManager)
	g.POST("", ctrl.CreateSparePart, manager)
	g.PUT("/:id", ctrl.UpdateSparePart, manager)
	g.DELETE("/:id", ctrl.DeleteSparePart, manager)

	// Technicians consume parts during repairs.
	g.POST("/:id/adjust-stock", ctrl.AdjustStock,
		authMW.RequireRole(constants.RoleTechnician, constants.RoleManager))
}
