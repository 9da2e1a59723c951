package routes

import (
	"gearguard/internal/controllers"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func registerNotificationRoutes(api *echo.Group, ctrl *controllers.NotificationController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/notifications", authMW.Auth)
	g.GET("", ctrl.GetNotifications)
	g.GET("/unread-count", ctrl.GetUnreadCount)
	g.POST("/:id/read", ctrl.MarkRead)
	g.POST("/read-all", ctrl.MarkAllRead)
	g.DELETE("/:id", ctrl.DeleteNotification)
}
