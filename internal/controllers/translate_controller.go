package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/services"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/utils"
)

type TranslateController struct {
	translateService services.TranslateServiceInterface
	logger           *zap.Logger
}

func NewTranslateController(service services.TranslateServiceInterface, logger *zap.Logger) *TranslateController {
	return &TranslateController{
		translateService: service,
		logger:           logger,
	}
}

func (c *TranslateController) Translate(ctx echo.Context) error {
	var payload dto.TranslateDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid request body", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.translateService.Translate(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "translated", http.StatusOK)
}
