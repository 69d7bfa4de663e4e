package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/controllers"
	"repair-system/internal/services"
)

func runExportRouter(secure *echo.Group, exportService services.ExportServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewExportController(exportService, logger)

	secure.GET("/history/export.csv", ctrl.HistoryCSV)
	secure.GET("/history/export.xlsx", ctrl.HistoryXLSX)
	secure.GET("/job_cards/:id/pdf", ctrl.JobCardPDF)
	secure.GET("/job_cards/:id/whatsapp_link", ctrl.WhatsAppLink)
}
