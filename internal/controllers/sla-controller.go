package controllers

import (
	"net/http"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SLAController struct {
	slaService services.SLAServiceInterface
	logger     *zap.Logger
}

func NewSLAController(slaService services.SLAServiceInterface, logger *zap.Logger) *SLAController {
	return &SLAController{slaService: slaService, logger: logger}
}

func (c *SLAController) GetSLAs(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	list, total, err := c.slaService.GetSLAs(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "SLA policies", http.StatusOK, total)
}

func (c *SLAController) FindSLA(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	sla, err := c.slaService.FindSLA(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, sla, "SLA policy", http.StatusOK)
}

// MatchSLA resolves the active policy for a priority and request type. A miss
// is a successful response with a null body, not an error.
func (c *SLAController) MatchSLA(ctx echo.Context) error {
	payload := dto.MatchSLADTO{
		Priority:    ctx.QueryParam("priority"),
		RequestType: ctx.QueryParam("request_type"),
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	sla, err := c.slaService.MatchSLA(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if sla == nil {
		return utils.SuccessResponse(ctx, nil, "No matching SLA policy", http.StatusOK)
	}
	return utils.SuccessResponse(ctx, sla, "Matching SLA policy", http.StatusOK)
}

func (c *SLAController) CreateSLA(ctx echo.Context) error {
	var payload dto.CreateSLADTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	sla, err := c.slaService.CreateSLA(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, sla, "SLA policy created", http.StatusCreated)
}

func (c *SLAController) UpdateSLA(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateSLADTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	sla, err := c.slaService.UpdateSLA(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, sla, "SLA policy updated", http.StatusOK)
}

func (c *SLAController) DeleteSLA(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.slaService.DeleteSLA(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "SLA policy deleted", http.StatusOK)
}
