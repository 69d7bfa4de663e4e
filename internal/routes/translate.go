package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/controllers"
	"repair-system/internal/services"
)

func runTranslateRouter(secure *echo.Group, translateService services.TranslateServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewTranslateController(translateService, logger)

	secure.POST("/translate", ctrl.Translate)
}
