package routes

import (
	"gearguard/internal/controllers"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func registerAttachmentRoutes(api *echo.Group, ctrl *controllers.AttachmentController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/attachments", authMW.Auth)
	g.POST("", ctrl.Upload)
	g.GET("/:entityType/:entityId", ctrl.GetByEntity)
	g.GET("/:id/download", ctrl.Download)
	g.DELETE("/:id", ctrl.DeleteAttachment)
}
