package routes

import (
	"gearguard/internal/controllers"
	"gearguard/pkg/constants"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func registerEquipmentRoutes(api *echo.Group, ctrl *controllers.EquipmentController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/equipment", authMW.Auth)
	g.GET("", ctrl.GetEquipments)
	g.GET("/:id", ctrl.FindEquipment)
	g.GET("/:id/requests", ctrl.GetEquipmentRequests)

	manager := authMW.RequireRole(constants.RoleManager)
	g.POST("", ctrl.CreateEquipment, manager)
	g.PUT("/:id", ctrl.UpdateEquipment, manager)
	g.POST("/:id/scrap", ctrl.ScrapEquipment, manager)
	g.DELETE("/:id", ctrl.DeleteEquipment, manager)
}
