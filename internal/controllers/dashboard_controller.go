package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/services"
	"repair-system/pkg/utils"
)

type DashboardController struct {
	requestService services.RequestServiceInterface
	logger         *zap.Logger
}

func NewDashboardController(service services.RequestServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		requestService: service,
		logger:         logger,
	}
}

func (c *DashboardController) GetDashboard(ctx echo.Context) error {
	res, err := c.requestService.Dashboard(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "dashboard counters", http.StatusOK)
}
