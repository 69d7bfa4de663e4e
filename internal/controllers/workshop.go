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

type WorkshopController struct {
	workshopService services.WorkshopServiceInterface
	logger          *zap.Logger
}

func NewWorkshopController(service services.WorkshopServiceInterface, logger *zap.Logger) *WorkshopController {
	return &WorkshopController{
		workshopService: service,
		logger:          logger,
	}
}

func (c *WorkshopController) GetWorkshops(ctx echo.Context) error {
	res, err := c.workshopService.ListWorkshops(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "workshop list", http.StatusOK)
}

func (c *WorkshopController) FindWorkshop(ctx echo.Context) error {
	res, err := c.workshopService.FindWorkshop(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "workshop found", http.StatusOK)
}

func (c *WorkshopController) CreateWorkshop(ctx echo.Context) error {
	var payload dto.CreateWorkshopDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid request body", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.workshopService.CreateWorkshop(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "workshop created", http.StatusCreated)
}

func (c *WorkshopController) UpdateWorkshop(ctx echo.Context) error {
	var payload dto.UpdateWorkshopDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid request body", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.workshopService.UpdateWorkshop(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "workshop updated", http.StatusOK)
}

func (c *WorkshopController) DeleteWorkshop(ctx echo.Context) error {
	if err := c.workshopService.DeleteWorkshop(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "workshop deleted", http.StatusOK)
}
