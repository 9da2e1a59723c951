package controllers

import (
	"strconv"

	"gearguard/pkg/apperrors"

	"github.com/labstack/echo/v4"
)

// parseIDParam reads a positive integer path parameter.
func parseIDParam(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewInvalidInputError("invalid %s parameter", name)
	}
	return id, nil
}

// parseIDForm reads a positive integer form field.
func parseIDForm(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.FormValue(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewInvalidInputError("invalid %s field", name)
	}
	return id, nil
}
