package routes

import (
	"gearguard/internal/controllers"
	"gearguard/pkg/constants"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func registerBudgetRoutes(api *echo.Group, ctrl *controllers.BudgetController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/budgets", authMW.Auth, authMW.RequireRole(constants.RoleManager))
	g.GET("", ctrl.GetBudgets)
	g.GET("/:id", ctrl.FindBudget)
	g.POST("", ctrl.CreateBudget)
	g.PUT("/:id", ctrl.UpdateBudget)
	g.POST("/:id/expenses", ctrl.AddExpense)
	g.DELETE("/:id", ctrl.DeleteBudget)
}
