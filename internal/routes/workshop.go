package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/controllers"
	"repair-system/internal/services"
)

func runWorkshopRouter(secure *echo.Group, workshopService services.WorkshopServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewWorkshopController(workshopService, logger)

	secure.GET("/workshops", ctrl.GetWorkshops)
	secure.GET("/workshops/:id", ctrl.FindWorkshop)
	secure.POST("/workshops", ctrl.CreateWorkshop)
	secure.PUT("/workshops/:id", ctrl.UpdateWorkshop)
	secure.DELETE("/workshops/:id", ctrl.DeleteWorkshop)
}
