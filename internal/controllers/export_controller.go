package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/services"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/utils"
)

type ExportController struct {
	exportService services.ExportServiceInterface
	logger        *zap.Logger
}

func NewExportController(service services.ExportServiceInterface, logger *zap.Logger) *ExportController {
	return &ExportController{
		exportService: service,
		logger:        logger,
	}
}

func (c *ExportController) bindFilter(ctx echo.Context) (dto.RequestFilterDTO, error) {
	var filter dto.RequestFilterDTO
	if err := ctx.Bind(&filter); err != nil {
		return filter, apperrors.NewBadRequestError("invalid filter parameters", err)
	}
	return filter, nil
}

func (c *ExportController) HistoryCSV(ctx echo.Context) error {
	filter, err := c.bindFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	data, err := c.exportService.HistoryCSV(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileName := fmt.Sprintf("history_%s.csv", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	return ctx.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (c *ExportController) HistoryXLSX(ctx echo.Context) error {
	filter, err := c.bindFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	f, err := c.exportService.HistoryXLSX(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileName := fmt.Sprintf("history_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func (c *ExportController) JobCardPDF(ctx echo.Context) error {
	id := ctx.Param("id")
	data, err := c.exportService.JobCardPDF(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set("Content-Disposition", "attachment; filename=job_card_"+id+".pdf")
	return ctx.Blob(http.StatusOK, "application/pdf", data)
}

func (c *ExportController) WhatsAppLink(ctx echo.Context) error {
	link, err := c.exportService.WhatsAppLink(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]string{"link": link}, "share link", http.StatusOK)
}
