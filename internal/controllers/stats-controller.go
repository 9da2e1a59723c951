package controllers

import (
	"net/http"
	"strconv"

	"gearguard/internal/services"
	"gearguard/pkg/constants"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type StatsController struct {
	statsService  services.StatsServiceInterface
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewStatsController(
	statsService services.StatsServiceInterface,
	reportService services.ReportServiceInterface,
	logger *zap.Logger,
) *StatsController {
	return &StatsController{
		statsService:  statsService,
		reportService: reportService,
		logger:        logger,
	}
}

func (c *StatsController) GetDashboard(ctx echo.Context) error {
	summary, err := c.statsService.GetDashboard(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, summary, "Dashboard summary", http.StatusOK)
}

func (c *StatsController) GetEquipmentStats(ctx echo.Context) error {
	groupBy := ctx.QueryParam("group_by")
	if groupBy == "" {
		groupBy = "status"
	}
	stats, err := c.statsService.GetEquipmentStats(ctx.Request().Context(), groupBy)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, "Equipment statistics", http.StatusOK)
}

func (c *StatsController) GetRequestStats(ctx echo.Context) error {
	groupBy := ctx.QueryParam("group_by")
	if groupBy == "" {
		groupBy = "status"
	}
	stats, err := c.statsService.GetRequestStats(ctx.Request().Context(), groupBy)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, "Request statistics", http.StatusOK)
}

func (c *StatsController) GetRequestTrend(ctx echo.Context) error {
	months, _ := strconv.Atoi(ctx.QueryParam("months"))
	trend, err := c.statsService.GetRequestTrend(ctx.Request().Context(), months)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, trend, "Request trend", http.StatusOK)
}

func (c *StatsController) GetCostSummary(ctx echo.Context) error {
	summary, err := c.statsService.GetCostSummary(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, summary, "Cost summary", http.StatusOK)
}

func (c *StatsController) GetSLACompliance(ctx echo.Context) error {
	compliance, err := c.statsService.GetSLACompliance(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, compliance, "SLA compliance", http.StatusOK)
}

func (c *StatsController) GetTeamPerformance(ctx echo.Context) error {
	performance, err := c.statsService.GetTeamPerformance(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, performance, "Team performance", http.StatusOK)
}

func (c *StatsController) GetMaintenanceReport(ctx echo.Context) error {
	rows, err := c.reportService.GetMaintenanceReport(
		ctx.Request().Context(),
		ctx.QueryParam("from"),
		ctx.QueryParam("to"),
	)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, rows, "Maintenance report", http.StatusOK)
}

func (c *StatsController) ExportMaintenanceReport(ctx echo.Context) error {
	buf, fileName, err := c.reportService.ExportMaintenanceReportXLSX(
		ctx.Request().Context(),
		ctx.QueryParam("from"),
		ctx.QueryParam("to"),
	)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// GetEnums exposes every enumeration the client renders pickers from.
func (c *StatsController) GetEnums(ctx echo.Context) error {
	enums := map[string]interface{}{
		"equipment_statuses": constants.EquipmentStatuses,
		"request_statuses":   constants.RequestStatuses,
		"request_types":      []string{constants.RequestTypeCorrective, constants.RequestTypePreventive},
		"priorities":         constants.Priorities,
		"stock_statuses": []string{
			constants.StockStatusInStock,
			constants.StockStatusLowStock,
			constants.StockStatusOutOfStock,
			constants.StockStatusDiscontinued,
		},
		"budget_statuses": []string{
			constants.BudgetStatusActive,
			constants.BudgetStatusExceeded,
			constants.BudgetStatusClosed,
		},
		"budget_periods": []string{
			constants.BudgetPeriodMonthly,
			constants.BudgetPeriodQuarterly,
			constants.BudgetPeriodAnnual,
		},
		"roles":        constants.Roles,
		"entity_types": constants.EntityTypes,
	}
	return utils.SuccessResponse(ctx, enums, "Enumerations", http.StatusOK)
}
