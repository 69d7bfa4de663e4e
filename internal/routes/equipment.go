package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/controllers"
	"repair-system/internal/services"
)

func runEquipmentRouter(secure *echo.Group, equipmentService services.EquipmentServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewEquipmentController(equipmentService, logger)

	secure.GET("/equipments", ctrl.GetEquipments)
	secure.GET("/equipments/:id", ctrl.FindEquipment)
	secure.POST("/equipments", ctrl.CreateEquipment)
	secure.PUT("/equipments/:id", ctrl.UpdateEquipment)
	secure.DELETE("/equipments/:id", ctrl.DeleteEquipment)
}
